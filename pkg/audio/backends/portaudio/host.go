package portaudio

import (
	"context"
	"fmt"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/gordonklaus/portaudio"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// monitorNameHints are the substrings identifying input devices which
// carry what is being played.
var monitorNameHints = []string{"monitor", "blackhole", "loopback", "stereo mix"}

type Host struct{}

var _ types.Host = (*Host)(nil)

func NewHost() (*Host, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	return &Host{}, nil
}

func (*Host) Close() error {
	return portaudio.Terminate()
}

func (*Host) Ping(
	ctx context.Context,
) error {
	info, err := portaudio.DefaultInputDevice()
	if err != nil {
		return err
	}
	logger.Debugf(ctx, "device info: %#+v", info)

	if devices, err := portaudio.Devices(); err == nil {
		for idx, device := range devices {
			logger.Tracef(ctx, "devices[%d]: %#+v", idx, device)
		}
	}
	return nil
}

func (*Host) Devices(ctx context.Context) ([]types.Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("unable to list devices: %w", err)
	}

	var result []types.Device
	for _, info := range devices {
		if info.MaxInputChannels <= 0 {
			continue
		}
		kind := types.DeviceKindInput
		if isMonitorName(info.Name) {
			kind = types.DeviceKindOutput
		}
		result = append(result, newDevice(info, kind))
	}
	return result, nil
}

func (*Host) DefaultInputDevice(ctx context.Context) (types.Device, error) {
	info, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, fmt.Errorf("unable to get the default input device: %w", err)
	}
	return newDevice(info, types.DeviceKindInput), nil
}

// DefaultOutputDevice is the first input device looking like a monitor
// of the playback, preferring one mentioning the default output device.
func (h *Host) DefaultOutputDevice(ctx context.Context) (types.Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("unable to list devices: %w", err)
	}

	var defaultOutputName string
	if info, err := portaudio.DefaultOutputDevice(); err == nil {
		defaultOutputName = strings.ToLower(info.Name)
	}

	var candidate *portaudio.DeviceInfo
	for _, info := range devices {
		if info.MaxInputChannels <= 0 || !isMonitorName(info.Name) {
			continue
		}
		if defaultOutputName != "" && strings.Contains(strings.ToLower(info.Name), defaultOutputName) {
			candidate = info
			break
		}
		if candidate == nil {
			candidate = info
		}
	}
	if candidate == nil {
		return nil, fmt.Errorf("no monitor source found among %d devices", len(devices))
	}
	logger.Debugf(ctx, "using '%s' as the output monitor", candidate.Name)
	return newDevice(candidate, types.DeviceKindOutput), nil
}

func isMonitorName(name string) bool {
	name = strings.ToLower(name)
	for _, hint := range monitorNameHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}
