package normalize

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

func encode(format types.SampleFormat, values ...float64) []byte {
	size := int(format.Size())
	buf := make([]byte, len(values)*size)
	for i, v := range values {
		p := buf[i*size:]
		switch format {
		case types.SampleFormatI8:
			p[0] = byte(int8(v))
		case types.SampleFormatI16:
			binary.LittleEndian.PutUint16(p, uint16(int16(v)))
		case types.SampleFormatI32:
			binary.LittleEndian.PutUint32(p, uint32(int32(v)))
		case types.SampleFormatI64:
			binary.LittleEndian.PutUint64(p, uint64(int64(v)))
		case types.SampleFormatU8:
			p[0] = byte(v)
		case types.SampleFormatU16:
			binary.LittleEndian.PutUint16(p, uint16(v))
		case types.SampleFormatU32:
			binary.LittleEndian.PutUint32(p, uint32(v))
		case types.SampleFormatU64:
			binary.LittleEndian.PutUint64(p, uint64(v))
		case types.SampleFormatF32:
			binary.LittleEndian.PutUint32(p, math.Float32bits(float32(v)))
		case types.SampleFormatF64:
			binary.LittleEndian.PutUint64(p, math.Float64bits(v))
		default:
			panic(format)
		}
	}
	return buf
}

func TestConvert(t *testing.T) {
	type testCase struct {
		format   types.SampleFormat
		input    []float64
		expected []float32
	}
	for _, tc := range []testCase{
		{types.SampleFormatI8, []float64{-128, 0, 64, 127}, []float32{-1, 0, 0.5, 127.0 / 128}},
		{types.SampleFormatI16, []float64{-32768, 0, 16384}, []float32{-1, 0, 0.5}},
		{types.SampleFormatI32, []float64{-2147483648, 0, 1073741824}, []float32{-1, 0, 0.5}},
		{types.SampleFormatI64, []float64{-9223372036854775808, 0, 4611686018427387904}, []float32{-1, 0, 0.5}},
		{types.SampleFormatU8, []float64{0, 128, 192}, []float32{-1, 0, 0.5}},
		{types.SampleFormatU16, []float64{0, 32768, 49152}, []float32{-1, 0, 0.5}},
		{types.SampleFormatU32, []float64{0, 2147483648, 3221225472}, []float32{-1, 0, 0.5}},
		{types.SampleFormatU64, []float64{0, 9223372036854775808, 13835058055282163712}, []float32{-1, 0, 0.5}},
		{types.SampleFormatF32, []float64{-1, 0, 0.25}, []float32{-1, 0, 0.25}},
		{types.SampleFormatF64, []float64{-1, 0, 0.25}, []float32{-1, 0, 0.25}},
	} {
		t.Run(tc.format.String(), func(t *testing.T) {
			n, err := For(tc.format)
			require.NoError(t, err)
			require.Equal(t, tc.format, n.Format())

			out := n.Convert(nil, encode(tc.format, tc.input...))
			require.Len(t, out, len(tc.input))
			for i := range tc.expected {
				assert.InDelta(t, tc.expected[i], out[i], 1e-6, spew.Sdump(out))
				assert.GreaterOrEqual(t, out[i], float32(-1))
				assert.LessOrEqual(t, out[i], float32(1))
			}
		})
	}
}

func TestConvertBoundedForAllFormats(t *testing.T) {
	for f := types.SampleFormatUndefined + 1; f < types.EndOfSampleFormat; f++ {
		if f == types.SampleFormatF32 || f == types.SampleFormatF64 {
			continue
		}
		t.Run(f.String(), func(t *testing.T) {
			n, err := For(f)
			require.NoError(t, err)

			raw := make([]byte, 64*f.Size())
			for i := range raw {
				raw[i] = byte(i*37 + 11)
			}
			for _, fill := range []byte{0x00, 0xff, 0x80, 0x7f} {
				edge := make([]byte, f.Size())
				for i := range edge {
					edge[i] = fill
				}
				raw = append(raw, edge...)
			}

			out := n.Convert(nil, raw)
			require.Len(t, out, len(raw)/int(f.Size()))
			for _, v := range out {
				assert.GreaterOrEqual(t, v, float32(-1))
				assert.LessOrEqual(t, v, float32(1))
			}
		})
	}
}

func TestDownmix(t *testing.T) {
	t.Run("length", func(t *testing.T) {
		for f := types.SampleFormatUndefined + 1; f < types.EndOfSampleFormat; f++ {
			n, err := For(f)
			require.NoError(t, err)
			for _, channels := range []types.Channel{1, 2, 3, 6} {
				for _, frames := range []int{0, 1, 7, 480} {
					raw := make([]byte, frames*int(channels)*int(f.Size()))
					out := n.Downmix(nil, raw, channels)
					require.Len(t, out, frames, "%s %d %d", f, channels, frames)
				}
			}
		}
	})

	t.Run("mono_is_identity", func(t *testing.T) {
		n, err := For(types.SampleFormatI16)
		require.NoError(t, err)
		raw := encode(types.SampleFormatI16, 1, -2, 300, -32768)
		require.Equal(t, n.Convert(nil, raw), n.Downmix(nil, raw, 1))
	})

	t.Run("native_integer_mean", func(t *testing.T) {
		n, err := For(types.SampleFormatI16)
		require.NoError(t, err)
		out := n.Downmix(nil, encode(types.SampleFormatI16, 100, 201, -3, 0), 2)
		require.Equal(t, []float32{float32(150.0 / 32768), float32(-1.0 / 32768)}, out)
	})

	t.Run("unsigned_mean", func(t *testing.T) {
		n, err := For(types.SampleFormatU8)
		require.NoError(t, err)
		out := n.Downmix(nil, encode(types.SampleFormatU8, 255, 255, 0, 255, 128, 128), 2)
		require.Equal(t, []float32{float32(127.0 / 128), float32(-1.0 / 128), 0}, out)
	})

	t.Run("wide_integers_do_not_overflow", func(t *testing.T) {
		n, err := For(types.SampleFormatI64)
		require.NoError(t, err)
		raw := make([]byte, 0, 32)
		raw = binary.LittleEndian.AppendUint64(raw, math.MaxInt64)
		raw = binary.LittleEndian.AppendUint64(raw, math.MaxInt64)
		raw = binary.LittleEndian.AppendUint64(raw, 1<<63)
		raw = binary.LittleEndian.AppendUint64(raw, 1<<63)
		out := n.Downmix(nil, raw, 2)
		require.InDelta(t, 1, out[0], 1e-6)
		require.Equal(t, float32(-1), out[1])

		n, err = For(types.SampleFormatU64)
		require.NoError(t, err)
		raw = raw[:0]
		raw = binary.LittleEndian.AppendUint64(raw, math.MaxUint64)
		raw = binary.LittleEndian.AppendUint64(raw, math.MaxUint64)
		raw = binary.LittleEndian.AppendUint64(raw, math.MaxUint64)
		out = n.Downmix(nil, raw, 3)
		require.InDelta(t, 1, out[0], 1e-6)
	})

	t.Run("float_mean", func(t *testing.T) {
		n, err := For(types.SampleFormatF32)
		require.NoError(t, err)
		out := n.Downmix(nil, encode(types.SampleFormatF32, 0.5, -0.25, 1, 1), 2)
		require.Equal(t, []float32{0.125, 1}, out)
	})

	t.Run("reuses_dst", func(t *testing.T) {
		n, err := For(types.SampleFormatF64)
		require.NoError(t, err)
		dst := make([]float32, 0, 16)
		out := n.Downmix(dst, encode(types.SampleFormatF64, 0.5, 0.5), 2)
		require.Equal(t, []float32{0.5}, out)
		require.Equal(t, &dst[:1][0], &out[0])
	})

	t.Run("not_a_whole_frame", func(t *testing.T) {
		n, err := For(types.SampleFormatI16)
		require.NoError(t, err)
		require.Panics(t, func() { n.Downmix(nil, make([]byte, 6), 2) })
		require.Panics(t, func() { n.Downmix(nil, make([]byte, 3), 1) })
		require.Panics(t, func() { n.Downmix(nil, make([]byte, 4), 0) })
		require.Panics(t, func() { n.Convert(nil, make([]byte, 3)) })
	})
}

func TestForUnsupported(t *testing.T) {
	for _, f := range []types.SampleFormat{types.SampleFormatUndefined, types.EndOfSampleFormat, 200} {
		_, err := For(f)
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestEncode(t *testing.T) {
	values := []float32{-1, -0.5, 0, 0.25, 0.5}
	for f := types.SampleFormatUndefined + 1; f < types.EndOfSampleFormat; f++ {
		t.Run(f.String(), func(t *testing.T) {
			n, err := For(f)
			require.NoError(t, err)
			out := n.Convert(nil, EncodeSlice(f, nil, values))
			require.Len(t, out, len(values))
			for i, v := range values {
				assert.InDelta(t, v, out[i], 1.0/64)
			}

			raw := make([]byte, f.Size())
			Encode(f, raw, 2)
			assert.InDelta(t, 1, n.Convert(nil, raw)[0], 1.0/64)
		})
	}
}
