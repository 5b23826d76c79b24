package pulseaudio

import (
	"context"
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// defaultChannels is what is requested from the server, which remixes
// the native layout of the source if needed.
const defaultChannels = 2

type Device struct {
	PulseClient *pulse.Client
	Name        string
	Kind        types.DeviceKind
	SampleRate  types.SampleRate
	Target      pulse.RecordOption
}

var _ types.Device = (*Device)(nil)

func newSourceDevice(
	client *pulse.Client,
	source *pulse.Source,
	kind types.DeviceKind,
) *Device {
	return &Device{
		PulseClient: client,
		Name:        source.Name(),
		Kind:        kind,
		SampleRate:  types.SampleRate(source.SampleRate()),
		Target:      pulse.RecordSource(source),
	}
}

func newSinkMonitorDevice(
	client *pulse.Client,
	sink *pulse.Sink,
) *Device {
	return &Device{
		PulseClient: client,
		Name:        sink.Name(),
		Kind:        types.DeviceKindOutput,
		SampleRate:  types.SampleRate(sink.SampleRate()),
		Target:      pulse.RecordMonitor(sink),
	}
}

func (d *Device) ID() types.DeviceID {
	return types.DeviceID{Name: d.Name, Kind: d.Kind}
}

func (d *Device) DefaultConfig(context.Context) (types.StreamConfig, error) {
	if d.SampleRate == 0 {
		return types.StreamConfig{}, fmt.Errorf("the server reported no sample rate for '%s'", d.Name)
	}
	return types.StreamConfig{
		SampleRate:   d.SampleRate,
		Channels:     defaultChannels,
		SampleFormat: types.SampleFormatF32,
	}, nil
}

func (d *Device) NewCaptureStream(
	ctx context.Context,
	cfg types.StreamConfig,
	onData types.DataCallback,
	onError types.ErrorCallback,
) (_ types.CaptureStream, _err error) {
	writer, err := newPulseWriter(cfg, onData)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a writer for Pulse: %w", err)
	}

	chanMap := proto.ChannelMap{proto.ChannelMono}
	switch cfg.Channels {
	case 1:
	case 2:
		chanMap = proto.ChannelMap{proto.ChannelLeft, proto.ChannelRight}
	default:
		return nil, fmt.Errorf("do not know how to configure %d channels", cfg.Channels)
	}

	stream, err := d.PulseClient.NewRecord(
		writer,
		d.Target,
		pulse.RecordSampleRate(int(cfg.SampleRate)),
		pulse.RecordChannels(chanMap),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a recording from '%s': %w", d.Name, err)
	}

	return newCaptureStream(d.Name, stream, onError), nil
}
