package malgo

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/gen2brain/malgo"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// monitorNameHints are the substrings identifying capture devices which
// carry what is being played (PulseAudio monitors, BlackHole, etc).
var monitorNameHints = []string{"monitor", "blackhole", "loopback", "stereo mix"}

type Host struct {
	Context *malgo.AllocatedContext
}

var _ types.Host = (*Host)(nil)

func NewHost() (*Host, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		logger.Default().Tracef("miniaudio: %s", strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a miniaudio context: %w", err)
	}
	return &Host{
		Context: ctx,
	}, nil
}

func (h *Host) Close() error {
	err := h.Context.Uninit()
	h.Context.Free()
	return err
}

func (h *Host) Ping(ctx context.Context) error {
	devices, err := h.Context.Devices(malgo.Capture)
	if err != nil {
		return fmt.Errorf("unable to list capture devices: %w", err)
	}
	for idx, device := range devices {
		logger.Tracef(ctx, "devices[%d]: %s", idx, device.String())
	}
	if len(devices) == 0 {
		return fmt.Errorf("no capture devices found")
	}
	return nil
}

func (h *Host) Devices(ctx context.Context) ([]types.Device, error) {
	captureDevices, err := h.Context.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("unable to list capture devices: %w", err)
	}

	var result []types.Device
	for _, info := range captureDevices {
		kind := types.DeviceKindInput
		if isMonitorName(info.Name()) {
			kind = types.DeviceKindOutput
		}
		result = append(result, newDevice(h, info, kind, malgo.Capture))
	}

	if supportsLoopback() {
		playbackDevices, err := h.Context.Devices(malgo.Playback)
		if err != nil {
			return nil, fmt.Errorf("unable to list playback devices: %w", err)
		}
		for _, info := range playbackDevices {
			result = append(result, newDevice(h, info, types.DeviceKindOutput, malgo.Loopback))
		}
	}
	return result, nil
}

func (h *Host) DefaultInputDevice(ctx context.Context) (types.Device, error) {
	return newDefaultDevice(h, types.DeviceKindInput, malgo.Capture, "default capture device"), nil
}

// DefaultOutputDevice is the loopback of the default playback device where
// loopback capture is supported (WASAPI), otherwise the first capture
// device looking like a monitor source.
func (h *Host) DefaultOutputDevice(ctx context.Context) (types.Device, error) {
	if supportsLoopback() {
		return newDefaultDevice(h, types.DeviceKindOutput, malgo.Loopback, "default playback device"), nil
	}

	captureDevices, err := h.Context.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("unable to list capture devices: %w", err)
	}
	for _, info := range captureDevices {
		if isMonitorName(info.Name()) {
			logger.Debugf(ctx, "using '%s' as the output monitor", info.Name())
			return newDevice(h, info, types.DeviceKindOutput, malgo.Capture), nil
		}
	}
	return nil, fmt.Errorf("no monitor source found among %d capture devices", len(captureDevices))
}

func supportsLoopback() bool {
	return runtime.GOOS == "windows"
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
