package pulseaudio

import (
	"context"
	"fmt"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/jfreymuth/pulse"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

const monitorSuffix = ".monitor"

type Host struct {
	PulseClient *pulse.Client
}

var _ types.Host = (*Host)(nil)

func NewHost() (*Host, error) {
	c, err := pulse.NewClient()
	if err != nil {
		return nil, fmt.Errorf("unable to open a client to Pulse: %w", err)
	}
	return &Host{
		PulseClient: c,
	}, nil
}

func (h *Host) Close() error {
	h.PulseClient.Close()
	return nil
}

func (h *Host) Ping(context.Context) error {
	_, err := h.PulseClient.DefaultSource()
	return err
}

func (h *Host) Devices(ctx context.Context) ([]types.Device, error) {
	sources, err := h.PulseClient.ListSources()
	if err != nil {
		return nil, fmt.Errorf("unable to list sources: %w", err)
	}
	var result []types.Device
	for _, source := range sources {
		kind := types.DeviceKindInput
		if strings.HasSuffix(source.ID(), monitorSuffix) {
			kind = types.DeviceKindOutput
		}
		logger.Tracef(ctx, "source '%s' (%s): %s", source.ID(), source.Name(), kind)
		result = append(result, newSourceDevice(h.PulseClient, source, kind))
	}
	return result, nil
}

func (h *Host) DefaultInputDevice(ctx context.Context) (types.Device, error) {
	source, err := h.PulseClient.DefaultSource()
	if err != nil {
		return nil, fmt.Errorf("unable to get the default source: %w", err)
	}
	return newSourceDevice(h.PulseClient, source, types.DeviceKindInput), nil
}

// DefaultOutputDevice is the monitor of the default sink.
func (h *Host) DefaultOutputDevice(ctx context.Context) (types.Device, error) {
	sink, err := h.PulseClient.DefaultSink()
	if err != nil {
		return nil, fmt.Errorf("unable to get the default sink: %w", err)
	}
	return newSinkMonitorDevice(h.PulseClient, sink), nil
}
