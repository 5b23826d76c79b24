package recorder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

func TestReconcileRates(t *testing.T) {
	for _, tc := range []struct {
		in, out  types.SampleRate
		expected Reconciliation
	}{
		{48000, 48000, Reconciliation{Target: ResampleNone, TargetRate: 48000, SourceRate: 48000}},
		{48000, 44100, Reconciliation{Target: ResampleInput, TargetRate: 44100, SourceRate: 48000}},
		{16000, 48000, Reconciliation{Target: ResampleOutput, TargetRate: 16000, SourceRate: 48000}},
		{44101, 44100, Reconciliation{Target: ResampleInput, TargetRate: 44100, SourceRate: 44101}},
	} {
		t.Run(tc.expected.Target.String(), func(t *testing.T) {
			require.Equal(t, tc.expected, ReconcileRates(tc.in, tc.out))
		})
	}
}

func TestReconcileRatesPicksTheLowerRate(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		in := types.SampleRate(rnd.Intn(192000) + 1)
		out := types.SampleRate(rnd.Intn(192000) + 1)
		rec := ReconcileRates(in, out)
		assert.Equal(t, min(in, out), rec.TargetRate)
		assert.Equal(t, max(in, out), rec.SourceRate)
		switch {
		case in == out:
			assert.Equal(t, ResampleNone, rec.Target)
		case in > out:
			assert.Equal(t, ResampleInput, rec.Target)
		default:
			assert.Equal(t, ResampleOutput, rec.Target)
		}
	}
}
