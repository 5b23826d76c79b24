package synthetic

import (
	"context"
	"fmt"
	"time"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

const (
	defaultPeriod = 10 * time.Millisecond
)

type Device struct {
	Host   *Host
	Source Source
}

var _ types.Device = (*Device)(nil)

func (d *Device) ID() types.DeviceID {
	return types.DeviceID{Name: d.Source.Name, Kind: d.Source.Kind}
}

func (d *Device) DefaultConfig(context.Context) (types.StreamConfig, error) {
	if d.Source.ConfigError != nil {
		return types.StreamConfig{}, d.Source.ConfigError
	}
	return d.Source.Config, nil
}

func (d *Device) NewCaptureStream(
	ctx context.Context,
	cfg types.StreamConfig,
	onData types.DataCallback,
	onError types.ErrorCallback,
) (types.CaptureStream, error) {
	if d.Source.NewStreamError != nil {
		return nil, d.Source.NewStreamError
	}
	if cfg.SampleRate == 0 || cfg.Channels == 0 || cfg.SampleFormat.Size() == 0 {
		return nil, fmt.Errorf("invalid stream config: %s", cfg)
	}

	src := d.Source
	if src.Generator == nil {
		src.Generator = Constant(0)
	}
	if src.Period <= 0 {
		src.Period = defaultPeriod
	}
	if src.Speed <= 0 {
		src.Speed = 1
	}
	s := newCaptureStream(ctx, d.Host, src, cfg, onData, onError)
	d.Host.addStream(s)
	return s, nil
}
