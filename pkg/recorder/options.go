package recorder

import (
	"time"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/resampler"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultClockDelay         = 400 * time.Millisecond
	DefaultPollInterval       = 10 * time.Millisecond
	DefaultChunkSize          = 44100
	DefaultPassthroughLatency = 150 * time.Millisecond
)

type Options struct {
	// ClockDelay is how often the stream owning goroutines check
	// whether the session was stopped.
	ClockDelay time.Duration

	// PollInterval is the sleep between the iterations of the resampler
	// stage and of the stream synchronizer.
	PollInterval time.Duration

	// ChunkSize provisions the queues: each one holds at least twice of it.
	ChunkSize uint

	// PassthroughLatency is the silence the output side is delayed by
	// when no resampling is needed.
	PassthroughLatency time.Duration

	Resampler resampler.Params

	// InputDevice and OutputDevice select devices by their
	// "<name> (input|output)" identity; empty means the default one.
	InputDevice  string
	OutputDevice string

	MeterProvider metric.MeterProvider
}

func DefaultOptions() Options {
	return Options{
		ClockDelay:         DefaultClockDelay,
		PollInterval:       DefaultPollInterval,
		ChunkSize:          DefaultChunkSize,
		PassthroughLatency: DefaultPassthroughLatency,
		Resampler:          resampler.DefaultParams(),
		MeterProvider:      otel.GetMeterProvider(),
	}
}

type Option func(*Options)

func WithClockDelay(d time.Duration) Option {
	return func(o *Options) { o.ClockDelay = d }
}

func WithPollInterval(d time.Duration) Option {
	return func(o *Options) { o.PollInterval = d }
}

func WithChunkSize(size uint) Option {
	return func(o *Options) { o.ChunkSize = size }
}

func WithPassthroughLatency(d time.Duration) Option {
	return func(o *Options) { o.PassthroughLatency = d }
}

func WithResampler(params resampler.Params) Option {
	return func(o *Options) { o.Resampler = params }
}

func WithInputDevice(id string) Option {
	return func(o *Options) { o.InputDevice = id }
}

func WithOutputDevice(id string) Option {
	return func(o *Options) { o.OutputDevice = id }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) { o.MeterProvider = mp }
}
