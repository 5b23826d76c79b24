package resampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, engine Engine, input []float32) []float32 {
	var result []float32
	for {
		n := engine.InputFramesNext()
		require.Positive(t, n)
		if n > len(input) {
			break
		}
		out, err := engine.Process(input[:n])
		require.NoError(t, err)
		result = append(result, out...)
		input = input[n:]
	}
	tail, err := engine.Flush()
	require.NoError(t, err)
	return append(result, tail...)
}

func TestNearest(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		engine, err := New(44100, 44100, Params{Kind: KindNearest, ChunkSize: 4})
		require.NoError(t, err)
		require.Equal(t, 4, engine.InputFramesNext())

		out, err := engine.Process([]float32{1, 2, 3, 4})
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3, 4}, out)
	})

	t.Run("44100_to_22050", func(t *testing.T) {
		engine, err := New(44100, 22050, Params{Kind: KindNearest, ChunkSize: 5})
		require.NoError(t, err)
		require.Equal(t, 9, engine.InputFramesNext())

		in := make([]float32, 9)
		for i := range in {
			in[i] = float32(i)
		}
		out, err := engine.Process(in)
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 2, 4, 6, 8}, out)
	})

	t.Run("upsampling_repeats", func(t *testing.T) {
		engine, err := New(22050, 44100, Params{Kind: KindNearest, ChunkSize: 6})
		require.NoError(t, err)
		out, err := engine.Process([]float32{10, 20, 30})
		require.NoError(t, err)
		assert.Equal(t, []float32{10, 20, 20, 30, 30}, out)
	})

	t.Run("frame_count_varies_and_does_not_drift", func(t *testing.T) {
		engine, err := New(48000, 44100, Params{Kind: KindNearest, ChunkSize: 440})
		require.NoError(t, err)

		seen := map[int]struct{}{}
		produced := 0
		consumed := 0
		for i := 0; i < 100; i++ {
			n := engine.InputFramesNext()
			seen[n] = struct{}{}
			out, err := engine.Process(make([]float32, n))
			require.NoError(t, err)
			require.Len(t, out, 440)
			produced += len(out)
			consumed += n
		}
		assert.Greater(t, len(seen), 1)
		assert.InDelta(t, float64(consumed)*44100/48000, float64(produced), 2)
	})
}

func TestPolyphase(t *testing.T) {
	t.Run("rate_ratio", func(t *testing.T) {
		engine, err := New(48000, 44100, DefaultParams())
		require.NoError(t, err)
		require.Equal(t, DefaultChunkSize, engine.InputFramesNext())

		input := make([]float32, 48000)
		for i := range input {
			input[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/48000))
		}
		out := feed(t, engine, input)
		consumed := (len(input) / DefaultChunkSize) * DefaultChunkSize
		assert.InEpsilon(t, float64(consumed)*44100/48000, float64(len(out)), 0.05)
		for _, v := range out {
			require.LessOrEqual(t, math.Abs(float64(v)), 0.6)
		}
	})

	t.Run("dc_is_preserved", func(t *testing.T) {
		engine, err := New(44100, 16000, DefaultParams())
		require.NoError(t, err)

		input := make([]float32, 44100)
		for i := range input {
			input[i] = 0.5
		}
		out := feed(t, engine, input)
		require.NotEmpty(t, out)
		mid := out[len(out)/4 : len(out)/2]
		for _, v := range mid {
			require.InDelta(t, 0.5, v, 0.01)
		}
	})

	t.Run("wrong_chunk_size", func(t *testing.T) {
		engine, err := New(48000, 44100, DefaultParams())
		require.NoError(t, err)
		_, err = engine.Process(make([]float32, 10))
		require.Error(t, err)
	})
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 44100, DefaultParams())
	require.Error(t, err)
	_, err = New(48000, 44100, Params{Kind: KindPolyphase})
	require.Error(t, err)
	_, err = New(48000, 44100, Params{Kind: KindUndefined, ChunkSize: 1})
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Nearest")
	require.NoError(t, err)
	require.Equal(t, KindNearest, k)

	var q Quality
	require.NoError(t, q.UnmarshalText([]byte("veryhigh")))
	require.Equal(t, QualityVeryHigh, q)
	require.Error(t, q.UnmarshalText([]byte("ultra")))

	_, err = ParseKind("soxr")
	require.Error(t, err)
}
