package recorder

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// startResampling runs the resampling dual path: the faster side goes
// through a resampler stage, then both sides meet in the stream synchronizer.
//
// Shutdown order: the synchronizer notices the stop, releases the streams,
// waits for the resampler stage to flush, emits the rest of the queues
// as a last (possibly short) chunk, and only then the delivery closes.
func (s *session) startResampling(
	ctx context.Context,
	in *captureSource,
	out *captureSource,
	rec Reconciliation,
) {
	capacity := 2 * max(s.options.ChunkSize, uint(rec.TargetRate))
	inQueue := newSampleQueue(sideInput, capacity)
	outQueue := newSampleQueue(sideOutput, capacity)

	// the producer of the staging queue is the capture callback of the
	// resampled side, the resampler stage produces into that side's queue
	inSink, outSink := inQueue, outQueue
	stage := &resamplerStage{
		session: s,
		from:    rec.SourceRate,
		to:      rec.TargetRate,
		params:  s.options.Resampler,
	}
	switch rec.Target {
	case ResampleInput:
		stage.input = newSampleQueue(sideInput, capacity)
		inQueue.name = sideResampler
		inSink, stage.output = stage.input, inQueue
	case ResampleOutput:
		stage.input = newSampleQueue(sideOutput, capacity)
		outQueue.name = sideResampler
		outSink, stage.output = stage.input, outQueue
	default:
		panic("the resampling path is chosen while nothing is to be resampled")
	}
	logger.Debugf(ctx, "resampling the %s stream %d -> %d", rec.Target, rec.SourceRate, rec.TargetRate)

	inputClosed := make(chan struct{})
	stage.inputClosed = inputClosed
	stageDone := make(chan struct{})
	s.goRun(ctx, func(ctx context.Context) {
		defer close(stageDone)
		stage.run(ctx)
	})

	s.goRun(ctx, func(ctx context.Context) {
		streams, err := s.openStreams(ctx,
			captureRoute{Source: in, Downmix: true, OnSamples: func(ctx context.Context, samples []float32) {
				s.push(ctx, inSink, samples)
			}},
			captureRoute{Source: out, Downmix: true, OnSamples: func(ctx context.Context, samples []float32) {
				s.push(ctx, outSink, samples)
			}},
		)
		if err != nil {
			close(inputClosed)
			s.fail(ctx, err)
			return
		}

		sync := newStreamSynchronizer(s, inQueue, outQueue, int(rec.TargetRate))
		sync.run(ctx)
		s.closeStreams(ctx, streams)
		close(inputClosed)
		<-stageDone
		sync.flush(ctx)
	})
}
