package resampler

import (
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// nearest repeats or skips input samples to match the output rate.
//
// Input sample i is positioned at i*inStep and output sample k at
// k*outStep; every output sample takes the value of the first input
// sample positioned at or after it. The steps are the opposite rates,
// so the positions are exact and do not drift.
type nearest struct {
	inStep      uint64
	outStep     uint64
	inDistance  uint64
	outDistance uint64
	outputChunk int
	buffer      []float32
}

var _ Engine = (*nearest)(nil)

func newNearest(
	from types.SampleRate,
	to types.SampleRate,
	outputChunk int,
) *nearest {
	return &nearest{
		inStep:      uint64(to),
		outStep:     uint64(from),
		outputChunk: outputChunk,
	}
}

// InputFramesNext is the amount of input samples required to produce
// the next outputChunk output samples.
func (r *nearest) InputFramesNext() int {
	last := r.outDistance + uint64(r.outputChunk-1)*r.outStep
	if last <= r.inDistance {
		return 1
	}
	return int((last-r.inDistance+r.inStep-1)/r.inStep) + 1
}

func (r *nearest) Process(in []float32) ([]float32, error) {
	r.buffer = r.buffer[:0]
	for _, v := range in {
		for r.outDistance <= r.inDistance {
			r.buffer = append(r.buffer, v)
			r.outDistance += r.outStep
		}
		r.inDistance += r.inStep
	}

	base := min(r.inDistance, r.outDistance)
	r.inDistance -= base
	r.outDistance -= base
	return r.buffer, nil
}

func (r *nearest) Flush() ([]float32, error) {
	return nil, nil
}
