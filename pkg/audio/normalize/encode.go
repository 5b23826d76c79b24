package normalize

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// Encode writes the canonical sample v into p using the native format f,
// saturating values outside of [-1, 1].
func Encode(f types.SampleFormat, p []byte, v float32) {
	x := math.Max(-1, math.Min(1, float64(v)))
	switch f {
	case types.SampleFormatI8:
		p[0] = byte(int8(scaleSigned(x, 128)))
	case types.SampleFormatI16:
		binary.LittleEndian.PutUint16(p, uint16(int16(scaleSigned(x, 32768))))
	case types.SampleFormatI32:
		binary.LittleEndian.PutUint32(p, uint32(int32(scaleSigned(x, 2147483648))))
	case types.SampleFormatI64:
		binary.LittleEndian.PutUint64(p, uint64(scaleSigned64(x)))
	case types.SampleFormatU8:
		p[0] = byte(int8(scaleSigned(x, 128)) ^ -128)
	case types.SampleFormatU16:
		binary.LittleEndian.PutUint16(p, uint16(int16(scaleSigned(x, 32768)))^0x8000)
	case types.SampleFormatU32:
		binary.LittleEndian.PutUint32(p, uint32(int32(scaleSigned(x, 2147483648)))^0x80000000)
	case types.SampleFormatU64:
		binary.LittleEndian.PutUint64(p, uint64(scaleSigned64(x))^0x8000000000000000)
	case types.SampleFormatF32:
		binary.LittleEndian.PutUint32(p, math.Float32bits(float32(x)))
	case types.SampleFormatF64:
		binary.LittleEndian.PutUint64(p, math.Float64bits(x))
	default:
		panic(fmt.Sprintf("unknown format: %v", f))
	}
}

// EncodeSlice encodes every sample of src into dst, which is grown if needed.
func EncodeSlice(f types.SampleFormat, dst []byte, src []float32) []byte {
	size := int(f.Size())
	if cap(dst) < len(src)*size {
		dst = make([]byte, len(src)*size)
	}
	dst = dst[:len(src)*size]
	for i, v := range src {
		Encode(f, dst[i*size:], v)
	}
	return dst
}

func scaleSigned(x float64, scale float64) int64 {
	return int64(math.Max(-scale, math.Min(scale-1, math.Round(x*scale))))
}

func scaleSigned64(x float64) int64 {
	switch {
	case x >= 1:
		return math.MaxInt64
	case x <= -1:
		return math.MinInt64
	default:
		return int64(math.Round(x * 9223372036854775808))
	}
}
