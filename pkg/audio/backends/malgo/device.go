package malgo

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/gen2brain/malgo"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type Device struct {
	Host       *Host
	DeviceType malgo.DeviceType
	// DeviceID is nil for the default device.
	DeviceID *malgo.DeviceID
	Name     string
	Kind     types.DeviceKind
}

var _ types.Device = (*Device)(nil)

func newDevice(
	host *Host,
	info malgo.DeviceInfo,
	kind types.DeviceKind,
	deviceType malgo.DeviceType,
) *Device {
	id := info.ID
	return &Device{
		Host:       host,
		DeviceType: deviceType,
		DeviceID:   &id,
		Name:       info.Name(),
		Kind:       kind,
	}
}

func newDefaultDevice(
	host *Host,
	kind types.DeviceKind,
	deviceType malgo.DeviceType,
	name string,
) *Device {
	return &Device{
		Host:       host,
		DeviceType: deviceType,
		Name:       name,
		Kind:       kind,
	}
}

func (d *Device) ID() types.DeviceID {
	return types.DeviceID{Name: d.Name, Kind: d.Kind}
}

func (d *Device) deviceConfig() malgo.DeviceConfig {
	cfg := malgo.DefaultDeviceConfig(d.DeviceType)
	if d.DeviceID != nil {
		cfg.Capture.DeviceID = d.DeviceID.Pointer()
	}
	return cfg
}

// DefaultConfig opens the device with everything left to the backend
// and reads back the native configuration it chose.
func (d *Device) DefaultConfig(ctx context.Context) (_ret types.StreamConfig, _err error) {
	logger.Tracef(ctx, "DefaultConfig[%s]", d.Name)
	defer func() { logger.Tracef(ctx, "/DefaultConfig[%s]: %v %v", d.Name, _ret, _err) }()

	cfg := d.deviceConfig()
	cfg.Capture.Format = malgo.FormatUnknown
	cfg.Capture.Channels = 0
	cfg.SampleRate = 0
	dev, err := malgo.InitDevice(d.Host.Context.Context, cfg, malgo.DeviceCallbacks{})
	if err != nil {
		return types.StreamConfig{}, fmt.Errorf("unable to open device '%s': %w", d.Name, err)
	}
	defer dev.Uninit()

	format, err := fromMalgoFormat(dev.CaptureFormat())
	if err != nil {
		return types.StreamConfig{}, err
	}
	return types.StreamConfig{
		SampleRate:   types.SampleRate(dev.SampleRate()),
		Channels:     types.Channel(dev.CaptureChannels()),
		SampleFormat: format,
	}, nil
}

func (d *Device) NewCaptureStream(
	ctx context.Context,
	streamCfg types.StreamConfig,
	onData types.DataCallback,
	onError types.ErrorCallback,
) (types.CaptureStream, error) {
	format, err := toMalgoFormat(streamCfg.SampleFormat)
	if err != nil {
		return nil, err
	}

	cfg := d.deviceConfig()
	cfg.Capture.Format = format
	cfg.Capture.Channels = uint32(streamCfg.Channels)
	cfg.SampleRate = uint32(streamCfg.SampleRate)
	frameSize := int(streamCfg.BytesPerFrame())

	s := &CaptureStream{
		Name:    d.Name,
		OnError: onError,
	}
	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, frameCount uint32) {
			expected := int(frameCount) * frameSize
			if len(input) < expected {
				s.OnError(fmt.Errorf("received %d bytes, but expected %d frames of %d bytes", len(input), frameCount, frameSize))
				return
			}
			onData(input[:expected])
		},
		Stop: func() {
			logger.Debugf(ctx, "device '%s' stopped", d.Name)
		},
	}
	s.Device, err = malgo.InitDevice(d.Host.Context.Context, cfg, callbacks)
	if err != nil {
		return nil, fmt.Errorf("unable to open a capture stream on '%s' with %s: %w", d.Name, streamCfg, err)
	}
	return s, nil
}

func fromMalgoFormat(f malgo.FormatType) (types.SampleFormat, error) {
	switch f {
	case malgo.FormatU8:
		return types.SampleFormatU8, nil
	case malgo.FormatS16:
		return types.SampleFormatI16, nil
	case malgo.FormatS32:
		return types.SampleFormatI32, nil
	case malgo.FormatF32:
		return types.SampleFormatF32, nil
	default:
		// S24 is packed into 3 bytes, which is not one of the supported encodings.
		return types.SampleFormatUndefined, fmt.Errorf("native format %d (%d bytes per sample) is not supported", f, malgo.SampleSizeInBytes(f))
	}
}

func toMalgoFormat(f types.SampleFormat) (malgo.FormatType, error) {
	switch f {
	case types.SampleFormatU8:
		return malgo.FormatU8, nil
	case types.SampleFormatI16:
		return malgo.FormatS16, nil
	case types.SampleFormatI32:
		return malgo.FormatS32, nil
	case types.SampleFormatF32:
		return malgo.FormatF32, nil
	default:
		return malgo.FormatUnknown, fmt.Errorf("miniaudio cannot capture samples in format %s", f)
	}
}
