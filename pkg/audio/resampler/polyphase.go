package resampler

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampler"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// polyphase feeds fixed-size input chunks to a FIR polyphase engine;
// the amount of produced samples varies from chunk to chunk.
type polyphase struct {
	engine    *resampling.SimpleResamplerFloat32
	chunkSize int
}

var _ Engine = (*polyphase)(nil)

func newPolyphase(
	from types.SampleRate,
	to types.SampleRate,
	quality Quality,
	chunkSize int,
) (*polyphase, error) {
	preset, err := quality.preset()
	if err != nil {
		return nil, err
	}
	engine, err := resampling.NewEngineFloat32(float64(from), float64(to), preset)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a polyphase resampler %d -> %d: %w", from, to, err)
	}
	return &polyphase{
		engine:    engine,
		chunkSize: chunkSize,
	}, nil
}

func (r *polyphase) InputFramesNext() int {
	return r.chunkSize
}

func (r *polyphase) Process(in []float32) ([]float32, error) {
	if len(in) != r.chunkSize {
		return nil, fmt.Errorf("expected %d input samples, received %d", r.chunkSize, len(in))
	}
	return r.engine.Process(in)
}

func (r *polyphase) Flush() ([]float32, error) {
	return r.engine.Flush()
}
