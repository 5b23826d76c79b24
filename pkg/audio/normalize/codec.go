package normalize

import (
	"encoding/binary"
	"math"
)

func decodeI8(p []byte) int8   { return int8(p[0]) }
func decodeI16(p []byte) int16 { return int16(binary.LittleEndian.Uint16(p)) }
func decodeI32(p []byte) int32 { return int32(binary.LittleEndian.Uint32(p)) }
func decodeI64(p []byte) int64 { return int64(binary.LittleEndian.Uint64(p)) }

func decodeU8(p []byte) uint8   { return p[0] }
func decodeU16(p []byte) uint16 { return binary.LittleEndian.Uint16(p) }
func decodeU32(p []byte) uint32 { return binary.LittleEndian.Uint32(p) }
func decodeU64(p []byte) uint64 { return binary.LittleEndian.Uint64(p) }

func decodeF32(p []byte) float64 { return float64(math.Float32frombits(binary.LittleEndian.Uint32(p))) }
func decodeF64(p []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(p)) }

func i8ToFloat(v int8) float32   { return float32(float64(v) / 128) }
func i16ToFloat(v int16) float32 { return float32(float64(v) / 32768) }
func i32ToFloat(v int32) float32 { return float32(float64(v) / 2147483648) }
func i64ToFloat(v int64) float32 { return float32(float64(v) / 9223372036854775808) }

func u8ToFloat(v uint8) float32   { return float32((float64(v) - 128) / 128) }
func u16ToFloat(v uint16) float32 { return float32((float64(v) - 32768) / 32768) }
func u32ToFloat(v uint32) float32 { return float32((float64(v) - 2147483648) / 2147483648) }
func u64ToFloat(v uint64) float32 {
	return float32((float64(v) - 9223372036854775808) / 9223372036854775808)
}

func newSigned[T int8 | int16 | int32](
	size int,
	decode func([]byte) T,
	toFloat func(T) float32,
) (convertFunc, downmixFunc) {
	return newConvert(size, decode, toFloat), func(dst []float32, raw []byte, channels int) []float32 {
		frameSize := size * channels
		frames := len(raw) / frameSize
		dst = grow(dst, frames)
		for f := 0; f < frames; f++ {
			frame := raw[f*frameSize:]
			var sum int64
			for c := 0; c < channels; c++ {
				sum += int64(decode(frame[c*size:]))
			}
			dst[f] = toFloat(T(sum / int64(channels)))
		}
		return dst
	}
}

func newUnsigned[T uint8 | uint16 | uint32](
	size int,
	decode func([]byte) T,
	toFloat func(T) float32,
) (convertFunc, downmixFunc) {
	return newConvert(size, decode, toFloat), func(dst []float32, raw []byte, channels int) []float32 {
		frameSize := size * channels
		frames := len(raw) / frameSize
		dst = grow(dst, frames)
		for f := 0; f < frames; f++ {
			frame := raw[f*frameSize:]
			var sum uint64
			for c := 0; c < channels; c++ {
				sum += uint64(decode(frame[c*size:]))
			}
			dst[f] = toFloat(T(sum / uint64(channels)))
		}
		return dst
	}
}

// 64-bit sums may overflow, so the mean is accumulated as the sum of
// per-sample quotients plus the mean of the remainders.

func newWideSigned() (convertFunc, downmixFunc) {
	const size = 8
	return newConvert(size, decodeI64, i64ToFloat), func(dst []float32, raw []byte, channels int) []float32 {
		frameSize := size * channels
		frames := len(raw) / frameSize
		dst = grow(dst, frames)
		n := int64(channels)
		for f := 0; f < frames; f++ {
			frame := raw[f*frameSize:]
			var quot, rem int64
			for c := 0; c < channels; c++ {
				v := decodeI64(frame[c*size:])
				quot += v / n
				rem += v % n
			}
			dst[f] = i64ToFloat(quot + rem/n)
		}
		return dst
	}
}

func newWideUnsigned() (convertFunc, downmixFunc) {
	const size = 8
	return newConvert(size, decodeU64, u64ToFloat), func(dst []float32, raw []byte, channels int) []float32 {
		frameSize := size * channels
		frames := len(raw) / frameSize
		dst = grow(dst, frames)
		n := uint64(channels)
		for f := 0; f < frames; f++ {
			frame := raw[f*frameSize:]
			var quot, rem uint64
			for c := 0; c < channels; c++ {
				v := decodeU64(frame[c*size:])
				quot += v / n
				rem += v % n
			}
			dst[f] = u64ToFloat(quot + rem/n)
		}
		return dst
	}
}

func newFloat(
	size int,
	decode func([]byte) float64,
) (convertFunc, downmixFunc) {
	toFloat := func(v float64) float32 { return float32(v) }
	return newConvert(size, decode, toFloat), func(dst []float32, raw []byte, channels int) []float32 {
		frameSize := size * channels
		frames := len(raw) / frameSize
		dst = grow(dst, frames)
		for f := 0; f < frames; f++ {
			frame := raw[f*frameSize:]
			var sum float64
			for c := 0; c < channels; c++ {
				sum += decode(frame[c*size:])
			}
			dst[f] = float32(sum / float64(channels))
		}
		return dst
	}
}

func newConvert[T any](
	size int,
	decode func([]byte) T,
	toFloat func(T) float32,
) convertFunc {
	return func(dst []float32, raw []byte) []float32 {
		count := len(raw) / size
		dst = grow(dst, count)
		for i := 0; i < count; i++ {
			dst[i] = toFloat(decode(raw[i*size:]))
		}
		return dst
	}
}
