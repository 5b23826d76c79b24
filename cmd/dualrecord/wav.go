package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/xaionaro-go/audiorecorder/pkg/recorder"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
)

// writeWAV stores the chunks as 16-bit PCM until the recorder closes the channel.
func writeWAV(
	ctx context.Context,
	ch <-chan []float32,
	cfg recorder.Config,
	path string,
) (_err error) {
	logger.Debugf(ctx, "writeWAV(ctx, %s, '%s')", cfg, path)
	defer func() { logger.Debugf(ctx, "/writeWAV(ctx, %s, '%s'): %v", cfg, path, _err) }()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create '%s': %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, int(cfg.SampleRate), wavBitDepth, int(cfg.Channels), wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: int(cfg.Channels),
			SampleRate:  int(cfg.SampleRate),
		},
		SourceBitDepth: wavBitDepth,
	}

	var total int
	for chunk := range ch {
		buf.Data = toPCM16(buf.Data, chunk)
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("unable to write %d samples: %w", len(chunk), err)
		}
		total += len(chunk)
		logger.Debugf(ctx, "written samples: %d", total)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("unable to finalize the WAV header: %w", err)
	}
	logger.Infof(ctx, "written %d samples to '%s'", total, path)
	return nil
}

func toPCM16(dst []int, src []float32) []int {
	if cap(dst) < len(src) {
		dst = make([]int, len(src))
	}
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = int(math.Round(math.Max(-1, math.Min(1, float64(v))) * math.MaxInt16))
	}
	return dst
}
