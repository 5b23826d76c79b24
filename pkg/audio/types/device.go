package types

import (
	"context"
	"fmt"
	"strings"
)

type DeviceKind uint8

const (
	DeviceKindUndefined = DeviceKind(iota)
	DeviceKindInput
	DeviceKindOutput
)

func (k DeviceKind) String() string {
	switch k {
	case DeviceKindInput:
		return "input"
	case DeviceKindOutput:
		return "output"
	default:
		return fmt.Sprintf("unknown_device_kind_%d", uint8(k))
	}
}

// DeviceID is the human-readable identity of a device in the form
// "<name> (input)" or "<name> (output)".
type DeviceID struct {
	Name string
	Kind DeviceKind
}

func (id DeviceID) String() string {
	return fmt.Sprintf("%s (%s)", id.Name, id.Kind)
}

func ParseDeviceID(s string) (DeviceID, error) {
	s = strings.TrimSpace(s)
	for _, kind := range []DeviceKind{DeviceKindInput, DeviceKindOutput} {
		suffix := " (" + kind.String() + ")"
		if !strings.HasSuffix(s, suffix) {
			continue
		}
		name := strings.TrimSpace(strings.TrimSuffix(s, suffix))
		if name == "" {
			return DeviceID{}, fmt.Errorf("empty device name in '%s'", s)
		}
		return DeviceID{Name: name, Kind: kind}, nil
	}
	return DeviceID{}, fmt.Errorf("device '%s' is expected to end with ' (input)' or ' (output)'", s)
}

// DataCallback receives interleaved native-format frames. The buffer
// is only valid for the duration of the call.
type DataCallback func(raw []byte)

// ErrorCallback receives transient stream errors; the stream keeps running.
type ErrorCallback func(err error)

type Device interface {
	ID() DeviceID
	DefaultConfig(ctx context.Context) (StreamConfig, error)
	NewCaptureStream(
		ctx context.Context,
		cfg StreamConfig,
		onData DataCallback,
		onError ErrorCallback,
	) (CaptureStream, error)
}
