package recorder

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/normalize"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/planar"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// latencySamples is the amount of mono samples covering the passthrough latency.
func (s *session) latencySamples(rate types.SampleRate) uint {
	return uint(s.options.PassthroughLatency.Seconds() * float64(rate))
}

// passthroughSynchronizer merges two streams of the same rate without
// a separate goroutine: the input callback pairs every sample it gets
// with one sample of the output queue.
type passthroughSynchronizer struct {
	session *session
	output  *sampleQueue
	outBuf  []float32
}

func newPassthroughSynchronizer(
	s *session,
	latency uint,
) *passthroughSynchronizer {
	queue := newSampleQueue(sideOutput, max(2*latency, 1))
	queue.Fill(normalize.Equilibrium, latency)
	return &passthroughSynchronizer{
		session: s,
		output:  queue,
	}
}

// onOutput is the producer side of the output queue.
func (p *passthroughSynchronizer) onOutput(ctx context.Context, samples []float32) {
	p.session.push(ctx, p.output, samples)
}

// onInput is the consumer side of the output queue.
func (p *passthroughSynchronizer) onInput(ctx context.Context, samples []float32) {
	if cap(p.outBuf) < len(samples) {
		p.outBuf = make([]float32, len(samples))
	}
	outBuf := p.outBuf[:len(samples)]
	n := p.output.PopSlice(outBuf)
	if underrun := len(outBuf) - n; underrun > 0 {
		for idx := n; idx < len(outBuf); idx++ {
			outBuf[idx] = normalize.Equilibrium
		}
		logger.Tracef(ctx, "the output queue underran by %d samples", underrun)
		p.session.metrics.UnderrunSamples.Add(ctx, int64(underrun), withSide(sideOutput))
	}

	chunk := make([]float32, 2*len(samples))
	planar.Interleave(chunk, samples, outBuf)
	p.session.delivery.Send(ctx, chunk)
}

// startPassthrough pre-fills the output queue with the latency worth of
// silence before any stream starts.
func (s *session) startPassthrough(
	ctx context.Context,
	in *captureSource,
	out *captureSource,
) {
	latency := s.latencySamples(in.Config.SampleRate)
	logger.Debugf(ctx, "passthrough latency: %d samples", latency)
	sync := newPassthroughSynchronizer(s, latency)

	s.goRun(ctx, func(ctx context.Context) {
		streams, err := s.openStreams(ctx,
			captureRoute{Source: in, Downmix: true, OnSamples: sync.onInput},
			captureRoute{Source: out, Downmix: true, OnSamples: sync.onOutput},
		)
		if err != nil {
			s.fail(ctx, err)
			return
		}
		s.waitStopped()
		s.closeStreams(ctx, streams)
	})
}
