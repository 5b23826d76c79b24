package recorder

import (
	"fmt"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// ResampleTarget is the stream which gets converted to the rate of the other one.
type ResampleTarget uint8

const (
	ResampleNone = ResampleTarget(iota)
	ResampleInput
	ResampleOutput
)

func (t ResampleTarget) String() string {
	switch t {
	case ResampleNone:
		return "none"
	case ResampleInput:
		return "input"
	case ResampleOutput:
		return "output"
	default:
		return fmt.Sprintf("unknown_resample_target_%d", uint8(t))
	}
}

type Reconciliation struct {
	Target     ResampleTarget
	TargetRate types.SampleRate

	// SourceRate is the native rate of the resampled stream; it equals
	// TargetRate if nothing is resampled.
	SourceRate types.SampleRate
}

// ReconcileRates always picks the lower of the two rates, so the
// resampled stream is the one with the higher rate.
func ReconcileRates(in, out types.SampleRate) Reconciliation {
	switch {
	case in < out:
		return Reconciliation{Target: ResampleOutput, TargetRate: in, SourceRate: out}
	case in > out:
		return Reconciliation{Target: ResampleInput, TargetRate: out, SourceRate: in}
	default:
		return Reconciliation{Target: ResampleNone, TargetRate: in, SourceRate: in}
	}
}
