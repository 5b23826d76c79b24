// Package recorder captures a microphone-class input device together with
// the loopback of an output device and delivers both as one stream of
// interleaved canonical samples.
package recorder

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audiorecorder/pkg/audio"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/normalize"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type Recorder struct {
	host    types.Host
	options Options
	metrics *Metrics

	recording atomic.Bool

	locker   sync.Mutex
	current  *session
	stopping *session
	config   *Config
}

func New(
	host types.Host,
	opts ...Option,
) (*Recorder, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.PollInterval <= 0 || options.ClockDelay <= 0 {
		return nil, fmt.Errorf("the poll interval and the clock delay must be positive: %v, %v", options.PollInterval, options.ClockDelay)
	}
	if options.ChunkSize == 0 {
		return nil, fmt.Errorf("the chunk size must be positive")
	}
	if options.PassthroughLatency <= 0 {
		return nil, fmt.Errorf("the passthrough latency must be positive: %v", options.PassthroughLatency)
	}
	metrics, err := NewMetrics(options.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the metrics: %w", err)
	}
	return &Recorder{
		host:    host,
		options: options,
		metrics: metrics,
	}, nil
}

func (r *Recorder) IsRecording() bool {
	return r.recording.Load()
}

// Config returns the layout of the delivered chunks. It stays available
// after the session is stopped, until the next Start.
func (r *Recorder) Config() (Config, error) {
	r.locker.Lock()
	defer r.locker.Unlock()
	if r.config == nil {
		return Config{}, ErrConfigNotSet
	}
	return *r.config, nil
}

// Start begins a session capturing the input device, and also the output
// device unless inputOnly is set. The returned channel is closed when
// the session released all its resources.
func (r *Recorder) Start(
	ctx context.Context,
	inputOnly bool,
) (_ret <-chan []float32, _err error) {
	logger.Debugf(ctx, "Start(ctx, %t)", inputOnly)
	defer func() { logger.Debugf(ctx, "/Start(ctx, %t): %v", inputOnly, _err) }()

	// Stop takes the locker too: it either precedes this start or sees the new session.
	r.locker.Lock()
	defer r.locker.Unlock()
	if !r.recording.CompareAndSwap(false, true) {
		return nil, ErrRecordingInProgress
	}
	r.config = nil

	s, cfg, err := r.startSession(ctx, inputOnly)
	if err != nil {
		r.recording.Store(false)
		return nil, err
	}
	logger.Debugf(ctx, "recording config: %s", cfg)
	r.config = &cfg
	r.current = s
	return s.delivery.Out(), nil
}

// startSession resolves and dispatches everything synchronously; the
// session itself outlives the context of the call.
func (r *Recorder) startSession(
	ctx context.Context,
	inputOnly bool,
) (*session, Config, error) {
	in, err := r.resolveSource(ctx, sideInput, types.DeviceKindInput, r.options.InputDevice)
	if err != nil {
		return nil, Config{}, err
	}

	if inputOnly {
		if err := in.dispatch(); err != nil {
			return nil, Config{}, &SignalError{Input: in.Config.SampleFormat, Err: err}
		}
		sctx := context.WithoutCancel(ctx)
		s := newSession(sctx, r.options, r.metrics, r.onSessionFailure)
		s.startSingle(sctx, in)
		s.launch(sctx)
		return s, Config{
			SampleRate: in.Config.SampleRate,
			Channels:   in.Config.Channels,
			SampleSize: in.Config.SampleFormat.Size(),
		}, nil
	}

	out, err := r.resolveSource(ctx, sideOutput, types.DeviceKindOutput, r.options.OutputDevice)
	if err != nil {
		return nil, Config{}, err
	}
	if err := dispatch(in, out); err != nil {
		return nil, Config{}, &SignalError{Input: in.Config.SampleFormat, Output: out.Config.SampleFormat, Err: err}
	}

	rec := ReconcileRates(in.Config.SampleRate, out.Config.SampleRate)
	sctx := context.WithoutCancel(ctx)
	s := newSession(sctx, r.options, r.metrics, r.onSessionFailure)
	switch rec.Target {
	case ResampleNone:
		s.startPassthrough(sctx, in, out)
	default:
		s.startResampling(sctx, in, out, rec)
	}
	s.launch(sctx)
	return s, Config{
		SampleRate: rec.TargetRate,
		Channels:   2,
		SampleSize: in.Config.SampleFormat.Size(),
	}, nil
}

func (r *Recorder) resolveSource(
	ctx context.Context,
	name side,
	kind types.DeviceKind,
	deviceID string,
) (*captureSource, error) {
	dev, err := audio.FindDevice(ctx, r.host, kind, deviceID)
	if err != nil {
		return nil, &DeviceError{Op: fmt.Sprintf("get the %s device", kind), Err: err}
	}
	cfg, err := dev.DefaultConfig(ctx)
	if err != nil {
		return nil, &DeviceError{Op: fmt.Sprintf("get the default config of '%s'", dev.ID()), Err: err}
	}
	if cfg.SampleRate == 0 || cfg.Channels == 0 {
		return nil, &DeviceError{Op: fmt.Sprintf("use the default config of '%s'", dev.ID()), Err: fmt.Errorf("invalid config %s", cfg)}
	}
	logger.Debugf(ctx, "%s device: '%s', %s", name, dev.ID(), cfg)
	return &captureSource{
		Side:   name,
		Device: dev,
		Config: cfg,
	}, nil
}

func (src *captureSource) dispatch() error {
	n, err := normalize.For(src.Config.SampleFormat)
	if err != nil {
		return err
	}
	src.Normalizer = n
	return nil
}

// dispatch selects the conversions of both sides before any stream is built.
func dispatch(sources ...*captureSource) error {
	var mErr *multierror.Error
	for _, src := range sources {
		if err := src.dispatch(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("%s: %w", src.Side, err))
		}
	}
	return mErr.ErrorOrNil()
}

func (r *Recorder) onSessionFailure(s *session) {
	r.locker.Lock()
	defer r.locker.Unlock()
	if r.current != s {
		return
	}
	r.current = nil
	r.stopping = s
	r.recording.Store(false)
}

// detach stops the current session, if any, and returns the session
// which is still (or was the last one) releasing its resources.
func (r *Recorder) detach(ctx context.Context) *session {
	r.locker.Lock()
	defer r.locker.Unlock()
	if s := r.current; s != nil {
		logger.Debugf(ctx, "stopping the recording session")
		s.stop()
		r.current = nil
		r.stopping = s
		r.recording.Store(false)
	}
	return r.stopping
}

// Stop requests the session to stop and returns without waiting.
// It does nothing if there is no session.
func (r *Recorder) Stop(ctx context.Context) {
	logger.Debugf(ctx, "Stop")
	defer logger.Debugf(ctx, "/Stop")
	r.detach(ctx)
}

// StopAndWait is Stop which also waits until all the streams of the
// session are released and its channel is closed.
func (r *Recorder) StopAndWait(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "StopAndWait")
	defer func() { logger.Debugf(ctx, "/StopAndWait: %v", _err) }()

	s := r.detach(ctx)
	if s == nil {
		return nil
	}
	return s.wait(ctx)
}

func (r *Recorder) Close() error {
	ctx := context.Background()
	var mErr *multierror.Error
	if err := r.StopAndWait(ctx); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("unable to stop the recording: %w", err))
	}
	if err := r.host.Close(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("unable to close the host: %w", err))
	}
	return mErr.ErrorOrNil()
}
