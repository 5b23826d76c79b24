// Package normalize converts native device samples into canonical float32
// samples, optionally collapsing every frame into one mono sample.
package normalize

import (
	"errors"
	"fmt"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// Equilibrium is the canonical value of silence.
const Equilibrium float32 = 0

var ErrUnsupportedFormat = errors.New("unsupported sample format")

type convertFunc func(dst []float32, raw []byte) []float32
type downmixFunc func(dst []float32, raw []byte, channels int) []float32

// Normalizer is the conversion of one sample format, selected once
// when a capture path is set up.
type Normalizer struct {
	format  types.SampleFormat
	convert convertFunc
	downmix downmixFunc
}

func For(format types.SampleFormat) (*Normalizer, error) {
	n := &Normalizer{format: format}
	switch format {
	case types.SampleFormatI8:
		n.convert, n.downmix = newSigned(1, decodeI8, i8ToFloat)
	case types.SampleFormatI16:
		n.convert, n.downmix = newSigned(2, decodeI16, i16ToFloat)
	case types.SampleFormatI32:
		n.convert, n.downmix = newSigned(4, decodeI32, i32ToFloat)
	case types.SampleFormatI64:
		n.convert, n.downmix = newWideSigned()
	case types.SampleFormatU8:
		n.convert, n.downmix = newUnsigned(1, decodeU8, u8ToFloat)
	case types.SampleFormatU16:
		n.convert, n.downmix = newUnsigned(2, decodeU16, u16ToFloat)
	case types.SampleFormatU32:
		n.convert, n.downmix = newUnsigned(4, decodeU32, u32ToFloat)
	case types.SampleFormatU64:
		n.convert, n.downmix = newWideUnsigned()
	case types.SampleFormatF32:
		n.convert, n.downmix = newFloat(4, decodeF32)
	case types.SampleFormatF64:
		n.convert, n.downmix = newFloat(8, decodeF64)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return n, nil
}

func (n *Normalizer) Format() types.SampleFormat {
	return n.format
}

// Convert converts every sample of raw to canonical float32 without any
// downmixing. The result reuses dst if it is large enough.
func (n *Normalizer) Convert(dst []float32, raw []byte) []float32 {
	assertMultiple(len(raw), int(n.format.Size()), 1)
	return n.convert(dst, raw)
}

// Downmix produces one canonical sample per frame of raw. The mean of
// the frame is computed in the native domain and converted afterwards.
//
// It panics if raw is not a whole number of frames.
func (n *Normalizer) Downmix(dst []float32, raw []byte, channels types.Channel) []float32 {
	assertMultiple(len(raw), int(n.format.Size()), int(channels))
	return n.downmix(dst, raw, int(channels))
}

func assertMultiple(length, sampleSize, channels int) {
	if channels <= 0 {
		panic(fmt.Errorf("invalid amount of channels: %d", channels))
	}
	if length%(sampleSize*channels) != 0 {
		panic(fmt.Errorf("buffer length is not a multiple of sampleSize*channels: %d %% %d*%d != 0", length, sampleSize, channels))
	}
}

func grow(dst []float32, n int) []float32 {
	if cap(dst) < n {
		return make([]float32, n)
	}
	return dst[:n]
}
