package portaudio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

const (
	// maxChannels limits the channels requested by DefaultConfig; wider
	// layouts are not needed for a downmixed capture.
	maxChannels = 2
)

type Device struct {
	Info *portaudio.DeviceInfo
	Kind types.DeviceKind
}

var _ types.Device = (*Device)(nil)

func newDevice(info *portaudio.DeviceInfo, kind types.DeviceKind) *Device {
	return &Device{
		Info: info,
		Kind: kind,
	}
}

func (d *Device) ID() types.DeviceID {
	return types.DeviceID{Name: d.Info.Name, Kind: d.Kind}
}

// DefaultConfig is the default rate of the device in float32; PortAudio
// converts from whatever the hardware uses.
func (d *Device) DefaultConfig(ctx context.Context) (types.StreamConfig, error) {
	if d.Info.MaxInputChannels <= 0 {
		return types.StreamConfig{}, fmt.Errorf("device '%s' has no input channels", d.Info.Name)
	}
	return types.StreamConfig{
		SampleRate:   types.SampleRate(d.Info.DefaultSampleRate),
		Channels:     types.Channel(min(d.Info.MaxInputChannels, maxChannels)),
		SampleFormat: types.SampleFormatF32,
	}, nil
}

func (d *Device) NewCaptureStream(
	ctx context.Context,
	cfg types.StreamConfig,
	onData types.DataCallback,
	onError types.ErrorCallback,
) (types.CaptureStream, error) {
	var (
		s   *CaptureStream
		err error
	)
	switch cfg.SampleFormat {
	case types.SampleFormatU8:
		s, err = newCaptureStream[uint8](ctx, d.Info, cfg, onData, onError)
	case types.SampleFormatI8:
		s, err = newCaptureStream[int8](ctx, d.Info, cfg, onData, onError)
	case types.SampleFormatI16:
		s, err = newCaptureStream[int16](ctx, d.Info, cfg, onData, onError)
	case types.SampleFormatI32:
		s, err = newCaptureStream[int32](ctx, d.Info, cfg, onData, onError)
	case types.SampleFormatF32:
		s, err = newCaptureStream[float32](ctx, d.Info, cfg, onData, onError)
	default:
		return nil, fmt.Errorf("do not know how to start a stream for sample format %s", cfg.SampleFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open a stream on '%s' with %s: %w", d.Info.Name, cfg, err)
	}
	return s, nil
}
