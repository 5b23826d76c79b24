package recorder

import (
	"errors"
	"fmt"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

var (
	// ErrDevice is matched by every device or device config resolution failure.
	ErrDevice = errors.New("device error")

	// ErrRecordingInProgress is returned by Start if a session is already running.
	ErrRecordingInProgress = errors.New("recording is already in progress")

	// ErrSignal is matched by every unsupported sample format failure.
	ErrSignal = errors.New("signal error")

	// ErrConfigNotSet is returned by Config before any capture path was set up.
	ErrConfigNotSet = errors.New("the recording config is not set")
)

type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("unable to %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() []error {
	return []error{ErrDevice, e.Err}
}

type SignalError struct {
	Input  types.SampleFormat
	Output types.SampleFormat
	Err    error
}

func (e *SignalError) Error() string {
	if e.Output == types.SampleFormatUndefined {
		return fmt.Sprintf("unable to handle the input sample format %s: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("unable to handle the sample format pair %s/%s: %v", e.Input, e.Output, e.Err)
}

func (e *SignalError) Unwrap() []error {
	return []error{ErrSignal, e.Err}
}
