package planar

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func TestInterleave(t *testing.T) {
	out := make([]float32, 6)
	Interleave(out, []float32{1, 2, 3}, []float32{-1, -2, -3})
	require.Equal(t, []float32{1, -1, 2, -2, 3, -3}, out)

	require.Panics(t, func() {
		Interleave(make([]float32, 5), []float32{1, 2, 3}, []float32{-1, -2})
	})
	require.Panics(t, func() {
		Interleave(make([]float32, 6), []float32{1, 2, 3, 4}, []float32{-1, -2})
	})
}

func TestInterleaveSinglePlane(t *testing.T) {
	plane := []int32{0, 1, 2, 3}
	out := make([]int32, len(plane))
	Interleave(out, plane)
	require.Equal(t, plane, out, spew.Sdump(out))
}
