package recorder

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/normalize"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type side string

const (
	sideInput     = side("input")
	sideOutput    = side("output")
	sideResampler = side("resampler")
)

// captureSource is a device with its resolved config and the
// conversion selected for its sample format.
type captureSource struct {
	Side       side
	Device     types.Device
	Config     types.StreamConfig
	Normalizer *normalize.Normalizer
}

// captureRoute tells how the samples of a source are consumed.
type captureRoute struct {
	Source *captureSource

	// Downmix collapses every frame into one sample; otherwise the
	// frames are forwarded as is.
	Downmix bool

	// OnSamples is called from the real-time callback of the stream;
	// the slice is only valid during the call.
	OnSamples func(ctx context.Context, samples []float32)
}

func (s *session) newCaptureStream(
	ctx context.Context,
	route captureRoute,
) (types.CaptureStream, error) {
	src := route.Source
	var buf []float32
	onData := func(raw []byte) {
		if route.Downmix {
			buf = src.Normalizer.Downmix(buf, raw, src.Config.Channels)
		} else {
			buf = src.Normalizer.Convert(buf, raw)
		}
		route.OnSamples(ctx, buf)
	}
	onError := func(err error) {
		logger.Warnf(ctx, "an error occurred on the %s stream: %v", src.Side, err)
		s.metrics.StreamErrors.Add(ctx, 1, withSide(src.Side))
	}
	stream, err := src.Device.NewCaptureStream(ctx, src.Config, onData, onError)
	if err != nil {
		return nil, fmt.Errorf("unable to build the %s stream on '%s': %w", src.Side, src.Device.ID(), err)
	}
	return stream, nil
}

// openStreams builds all streams first and then starts them in order.
// On a failure everything built so far is released.
func (s *session) openStreams(
	ctx context.Context,
	routes ...captureRoute,
) (_ret []types.CaptureStream, _err error) {
	logger.Debugf(ctx, "openStreams")
	defer func() { logger.Debugf(ctx, "/openStreams: %v", _err) }()

	var streams []types.CaptureStream
	for _, route := range routes {
		stream, err := s.newCaptureStream(ctx, route)
		if err != nil {
			s.closeStreams(ctx, streams)
			return nil, err
		}
		streams = append(streams, stream)
	}

	for idx, stream := range streams {
		if err := stream.Play(); err != nil {
			s.closeStreams(ctx, streams)
			return nil, fmt.Errorf("unable to start the %s stream: %w", routes[idx].Source.Side, err)
		}
	}
	return streams, nil
}

// closeStreams pauses all streams and only then releases them.
func (s *session) closeStreams(
	ctx context.Context,
	streams []types.CaptureStream,
) {
	logger.Debugf(ctx, "closeStreams")
	defer logger.Debugf(ctx, "/closeStreams")

	var mErr *multierror.Error
	for _, stream := range streams {
		if err := stream.Pause(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to pause a stream: %w", err))
		}
	}
	for _, stream := range streams {
		if err := stream.Close(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to close a stream: %w", err))
		}
	}
	if err := mErr.ErrorOrNil(); err != nil {
		logger.Errorf(ctx, "unable to release the streams cleanly: %v", err)
	}
}
