// Package config is the file configuration of the dualrecord command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/resampler"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
	"github.com/xaionaro-go/audiorecorder/pkg/recorder"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Backend is the name of the audio backend; empty means the first usable one.
	Backend      string `yaml:"backend"`
	InputDevice  string `yaml:"input_device"`
	OutputDevice string `yaml:"output_device"`
	InputOnly    bool   `yaml:"input_only"`

	Recorder Recorder `yaml:"recorder"`
}

type Recorder struct {
	ClockDelay         time.Duration     `yaml:"clock_delay"`
	PollInterval       time.Duration     `yaml:"poll_interval"`
	ChunkSize          uint              `yaml:"chunk_size"`
	PassthroughLatency time.Duration     `yaml:"passthrough_latency"`
	Resampler          resampler.Kind    `yaml:"resampler"`
	ResamplerQuality   resampler.Quality `yaml:"resampler_quality"`
	ResamplerChunkSize int               `yaml:"resampler_chunk_size"`
}

func Default() Config {
	opts := recorder.DefaultOptions()
	return Config{
		Recorder: Recorder{
			ClockDelay:         opts.ClockDelay,
			PollInterval:       opts.PollInterval,
			ChunkSize:          opts.ChunkSize,
			PassthroughLatency: opts.PassthroughLatency,
			Resampler:          opts.Resampler.Kind,
			ResamplerQuality:   opts.Resampler.Quality,
			ResamplerChunkSize: opts.Resampler.ChunkSize,
		},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to open '%s': %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("unable to load '%s': %w", path, err)
	}
	return cfg, nil
}

func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unable to decode YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	var mErr *multierror.Error
	if cfg.InputDevice != "" {
		if err := validateDeviceID(cfg.InputDevice, types.DeviceKindInput); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("input_device: %w", err))
		}
	}
	if cfg.OutputDevice != "" {
		if err := validateDeviceID(cfg.OutputDevice, types.DeviceKindOutput); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("output_device: %w", err))
		}
	}

	r := cfg.Recorder
	if r.ClockDelay <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("recorder.clock_delay must be positive, got %v", r.ClockDelay))
	}
	if r.PollInterval <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("recorder.poll_interval must be positive, got %v", r.PollInterval))
	}
	if r.ChunkSize == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("recorder.chunk_size must be positive"))
	}
	if r.PassthroughLatency <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("recorder.passthrough_latency must be positive, got %v", r.PassthroughLatency))
	}
	if r.ResamplerChunkSize <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("recorder.resampler_chunk_size must be positive, got %d", r.ResamplerChunkSize))
	}
	return mErr.ErrorOrNil()
}

func validateDeviceID(id string, kind types.DeviceKind) error {
	parsed, err := types.ParseDeviceID(id)
	if err != nil {
		return err
	}
	if parsed.Kind != kind {
		return fmt.Errorf("'%s' is not an %s device", id, kind)
	}
	return nil
}

// RecorderOptions converts the config into the options of recorder.New.
func (cfg Config) RecorderOptions() []recorder.Option {
	r := cfg.Recorder
	return []recorder.Option{
		recorder.WithClockDelay(r.ClockDelay),
		recorder.WithPollInterval(r.PollInterval),
		recorder.WithChunkSize(r.ChunkSize),
		recorder.WithPassthroughLatency(r.PassthroughLatency),
		recorder.WithResampler(resampler.Params{
			Kind:      r.Resampler,
			Quality:   r.ResamplerQuality,
			ChunkSize: r.ResamplerChunkSize,
		}),
		recorder.WithInputDevice(cfg.InputDevice),
		recorder.WithOutputDevice(cfg.OutputDevice),
	}
}
