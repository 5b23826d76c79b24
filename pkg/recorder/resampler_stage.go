package recorder

import (
	"context"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/resampler"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// resamplerStage moves samples from one queue to another converting
// their rate. The engine is owned by the stage goroutine exclusively.
type resamplerStage struct {
	session *session
	from    types.SampleRate
	to      types.SampleRate
	params  resampler.Params
	input   *sampleQueue
	output  *sampleQueue

	// inputClosed is closed when nothing will be pushed to input anymore.
	inputClosed <-chan struct{}

	buf []float32
}

func (st *resamplerStage) run(ctx context.Context) {
	logger.Debugf(ctx, "resamplerStage[%d->%d]", st.from, st.to)
	defer logger.Debugf(ctx, "/resamplerStage[%d->%d]", st.from, st.to)

	engine, err := resampler.New(st.from, st.to, st.params)
	if err != nil {
		// the capture goes on, the resampled side just stays silent
		logger.Errorf(ctx, "unable to initialize the resampler: %v", err)
		st.session.metrics.ResamplerErrors.Add(ctx, 1)
		return
	}

	for st.session.isActive() {
		st.drain(ctx, engine)
		time.Sleep(st.session.options.PollInterval)
	}

	<-st.inputClosed
	st.drain(ctx, engine)
	tail, err := engine.Flush()
	if err != nil {
		logger.Errorf(ctx, "unable to flush the resampler: %v", err)
		st.session.metrics.ResamplerErrors.Add(ctx, 1)
		return
	}
	st.session.push(ctx, st.output, tail)
}

// drain processes the input while it holds enough samples for the next step.
func (st *resamplerStage) drain(ctx context.Context, engine resampler.Engine) {
	for {
		need := engine.InputFramesNext()
		if st.input.Len() < uint(need) {
			return
		}
		if cap(st.buf) < need {
			st.buf = make([]float32, need)
		}
		in := st.buf[:need]
		st.input.PopSlice(in)

		out, err := engine.Process(in)
		if err != nil {
			logger.Errorf(ctx, "unable to resample %d samples: %v", need, err)
			st.session.metrics.ResamplerErrors.Add(ctx, 1)
			continue
		}
		st.session.push(ctx, st.output, out)
	}
}
