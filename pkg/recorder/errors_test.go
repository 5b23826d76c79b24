package recorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

func TestErrors(t *testing.T) {
	devErr := error(&DeviceError{Op: "get the input device", Err: assert.AnError})
	require.ErrorIs(t, devErr, ErrDevice)
	require.ErrorIs(t, devErr, assert.AnError)
	require.NotErrorIs(t, devErr, ErrSignal)
	assert.Contains(t, devErr.Error(), "unable to get the input device")

	sigErr := error(&SignalError{Input: types.SampleFormatI16, Output: types.SampleFormatF32, Err: assert.AnError})
	require.ErrorIs(t, sigErr, ErrSignal)
	require.ErrorIs(t, sigErr, assert.AnError)
	assert.Contains(t, sigErr.Error(), "i16/f32")

	var target *SignalError
	require.True(t, errors.As(sigErr, &target))
	assert.Equal(t, types.SampleFormatF32, target.Output)

	single := &SignalError{Input: types.SampleFormatI16, Err: assert.AnError}
	assert.NotContains(t, single.Error(), "/")
}
