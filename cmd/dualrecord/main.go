package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/audiorecorder/pkg/audio"
	_ "github.com/xaionaro-go/audiorecorder/pkg/audio/backends/malgo"
	_ "github.com/xaionaro-go/audiorecorder/pkg/audio/backends/portaudio"
	_ "github.com/xaionaro-go/audiorecorder/pkg/audio/backends/pulseaudio"
	_ "github.com/xaionaro-go/audiorecorder/pkg/audio/backends/synthetic"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/resampler"
	"github.com/xaionaro-go/audiorecorder/pkg/chunkreader"
	"github.com/xaionaro-go/audiorecorder/pkg/config"
	"github.com/xaionaro-go/audiorecorder/pkg/recorder"
	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/observability"
)

const (
	rawBufferSize = 1 << 20
)

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	configPath := pflag.String("config", "", "path to a YAML config file")
	backend := pflag.String("backend", "", "audio backend (malgo, portaudio, pulseaudio, synthetic); empty means the first usable one")
	inputOnly := pflag.Bool("input-only", false, "record only the input device")
	inputDevice := pflag.String("input-device", "", `input device, e.g. "Built-in Microphone (input)"; empty means the default one`)
	outputDevice := pflag.String("output-device", "", `output device to record the loopback of, e.g. "Speakers (output)"; empty means the default one`)
	duration := pflag.Duration("duration", 0, "stop after this duration; zero means to record until interrupted")
	output := pflag.String("output", "-", `"-" writes raw interleaved float32LE to stdout, otherwise a path to a 16-bit .wav file`)
	resamplerKind := resampler.KindPolyphase
	pflag.Var(&resamplerKind, "resampler", "resampler engine: polyphase or nearest")
	latency := pflag.Duration("latency", recorder.DefaultPassthroughLatency, "the delay of the output side when no resampling is needed")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		assertNoError(err)
	}
	pflag.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "input-only":
			cfg.InputOnly = *inputOnly
		case "input-device":
			cfg.InputDevice = *inputDevice
		case "output-device":
			cfg.OutputDevice = *outputDevice
		case "resampler":
			cfg.Recorder.Resampler = resamplerKind
		case "latency":
			cfg.Recorder.PassthroughLatency = *latency
		}
	})
	assertNoError(cfg.Validate())

	var host audio.Host
	if cfg.Backend == "" {
		host = audio.NewHostAuto(ctx)
	} else {
		var err error
		host, err = audio.NewHost(ctx, cfg.Backend)
		assertNoError(err)
	}

	rec, err := recorder.New(host, cfg.RecorderOptions()...)
	assertNoError(err)
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Errorf(ctx, "unable to close the recorder: %v", err)
		}
	}()

	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancelFn()
	if *duration > 0 {
		ctx, cancelFn = context.WithTimeout(ctx, *duration)
		defer cancelFn()
	}

	ch, err := rec.Start(ctx, cfg.InputOnly)
	assertNoError(err)
	recCfg, err := rec.Config()
	assertNoError(err)
	logger.Infof(ctx, "recording %s", recCfg)

	observability.Go(ctx, func(ctx context.Context) {
		<-ctx.Done()
		logger.Infof(ctx, "stopping...")
		rec.Stop(ctx)
	})

	switch {
	case *output == "-":
		err = writeRaw(ctx, ch, os.Stdout)
	case strings.HasSuffix(strings.ToLower(*output), ".wav"):
		err = writeWAV(ctx, ch, recCfg, *output)
	default:
		err = fmt.Errorf("unsupported output '%s': expected '-' or a path to a .wav file", *output)
	}
	assertNoError(err)
}

// writeRaw copies the chunks until the recorder closes the channel.
func writeRaw(
	ctx context.Context,
	ch <-chan []float32,
	w io.Writer,
) error {
	reader, err := chunkreader.NewReader(context.WithoutCancel(ctx), ch, rawBufferSize)
	if err != nil {
		return err
	}
	wc := datacounter.NewWriterCounter(w)

	printerCtx, cancelPrinter := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelPrinter()
	observability.Go(printerCtx, func(ctx context.Context) {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logger.Debugf(ctx, "written: %d", wc.Count())
			}
		}
	})

	if _, err := io.Copy(wc, reader); err != nil {
		return fmt.Errorf("unable to write the samples: %w", err)
	}
	logger.Infof(ctx, "written %d bytes in total", wc.Count())
	return nil
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
