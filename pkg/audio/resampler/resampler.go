// Package resampler provides mono sample-rate converters which consume
// input in engine-determined chunk sizes.
package resampler

import (
	"fmt"
	"strings"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// Engine converts a mono stream of canonical samples from one rate to
// another. It is not safe for concurrent use.
type Engine interface {
	// InputFramesNext is the amount of input samples the next Process
	// call expects. It may change after every call.
	InputFramesNext() int
	// Process returns a slice which is only valid until the next call.
	Process(in []float32) ([]float32, error)
	// Flush returns the samples still held inside the engine.
	Flush() ([]float32, error)
}

type Kind uint8

const (
	KindUndefined = Kind(iota)
	KindPolyphase
	KindNearest
	EndOfKind
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindPolyphase:
		return "polyphase"
	case KindNearest:
		return "nearest"
	default:
		return fmt.Sprintf("unknown_resampler_%d", uint8(k))
	}
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := KindUndefined + 1; k < EndOfKind; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return KindUndefined, fmt.Errorf("unknown resampler '%s'", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Set and Type implement pflag.Value.
func (k *Kind) Set(s string) error {
	return k.UnmarshalText([]byte(s))
}

func (k *Kind) Type() string {
	return "resampler"
}

type Params struct {
	Kind    Kind
	Quality Quality

	// ChunkSize is the amount of input samples fed per step to the
	// polyphase engine, and the amount of output samples produced per
	// step by the nearest engine.
	ChunkSize int
}

const DefaultChunkSize = 1024

func DefaultParams() Params {
	return Params{
		Kind:      KindPolyphase,
		Quality:   QualityHigh,
		ChunkSize: DefaultChunkSize,
	}
}

func New(
	from types.SampleRate,
	to types.SampleRate,
	params Params,
) (Engine, error) {
	if from == 0 || to == 0 {
		return nil, fmt.Errorf("invalid sample rates: %d -> %d", from, to)
	}
	if params.ChunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size: %d", params.ChunkSize)
	}
	switch params.Kind {
	case KindPolyphase:
		return newPolyphase(from, to, params.Quality, params.ChunkSize)
	case KindNearest:
		return newNearest(from, to, params.ChunkSize), nil
	default:
		return nil, fmt.Errorf("unknown resampler kind: %s", params.Kind)
	}
}
