package audio

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// FindDevice resolves a device by its "<name> (input|output)" identity.
// An empty id resolves to the default device of the requested kind.
func FindDevice(
	ctx context.Context,
	host Host,
	kind DeviceKind,
	id string,
) (Device, error) {
	if id == "" {
		switch kind {
		case DeviceKindInput:
			return host.DefaultInputDevice(ctx)
		case DeviceKindOutput:
			return host.DefaultOutputDevice(ctx)
		default:
			return nil, fmt.Errorf("unexpected device kind %s", kind)
		}
	}

	wanted, err := types.ParseDeviceID(id)
	if err != nil {
		return nil, fmt.Errorf("unable to parse the device identity: %w", err)
	}
	if wanted.Kind != kind {
		return nil, fmt.Errorf("device '%s' is an %s device, but an %s device is required", id, wanted.Kind, kind)
	}

	devices, err := host.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list devices: %w", err)
	}
	for _, dev := range devices {
		if dev.ID() == wanted {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("device '%s' not found", id)
}
