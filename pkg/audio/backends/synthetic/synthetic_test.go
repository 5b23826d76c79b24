package synthetic

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/normalize"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

func TestDefaultDevices(t *testing.T) {
	ctx := context.Background()
	h := NewHost(DefaultSources()...)
	defer h.Close()

	in, err := h.DefaultInputDevice(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.DeviceKindInput, in.ID().Kind)

	out, err := h.DefaultOutputDevice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Synthetic Monitor (output)", out.ID().String())

	cfg, err := out.DefaultConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.SampleRate(44100), cfg.SampleRate)

	devices, err := h.Devices(ctx)
	require.NoError(t, err)
	assert.Len(t, devices, 2)

	_, err = NewHost().DefaultInputDevice(ctx)
	require.Error(t, err)
}

func TestCaptureStream(t *testing.T) {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	cfg := types.StreamConfig{SampleRate: 8000, Channels: 2, SampleFormat: types.SampleFormatI16}
	h := NewHost(Source{
		Name:       "ramp",
		Kind:       types.DeviceKindInput,
		Config:     cfg,
		Generator:  Constant(0.5),
		Period:     time.Millisecond,
		Speed:      10,
		ErrorEvery: 2,
	})
	defer h.Close()

	dev, err := h.DefaultInputDevice(ctx)
	require.NoError(t, err)

	var (
		locker sync.Mutex
		raw    []byte
		errs   int
	)
	stream, err := dev.NewCaptureStream(ctx, cfg, func(p []byte) {
		locker.Lock()
		defer locker.Unlock()
		raw = append(raw, p...)
	}, func(err error) {
		locker.Lock()
		defer locker.Unlock()
		errs++
	})
	require.NoError(t, err)
	require.Equal(t, 1, h.OpenStreams())

	require.NoError(t, stream.Play())
	require.Eventually(t, func() bool {
		locker.Lock()
		defer locker.Unlock()
		return len(raw) >= int(cfg.BytesPerFrame())*1000 && errs > 0
	}, 5*time.Second, time.Millisecond)
	require.NoError(t, stream.Pause())

	locker.Lock()
	n, err := normalize.For(cfg.SampleFormat)
	require.NoError(t, err)
	samples := n.Convert(nil, raw)
	locker.Unlock()

	require.Zero(t, len(samples)%2)
	for _, v := range samples {
		assert.InDelta(t, 0.5, v, 1e-4)
	}

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())
	assert.Equal(t, 0, h.OpenStreams())
	require.Error(t, stream.Play())
}

func TestNewCaptureStreamErrors(t *testing.T) {
	ctx := context.Background()
	h := NewHost(Source{
		Name:           "broken",
		Kind:           types.DeviceKindOutput,
		Config:         types.StreamConfig{SampleRate: 8000, Channels: 1, SampleFormat: types.SampleFormatU8},
		NewStreamError: assert.AnError,
	})
	dev, err := h.DefaultOutputDevice(ctx)
	require.NoError(t, err)

	cfg, err := dev.DefaultConfig(ctx)
	require.NoError(t, err)
	_, err = dev.NewCaptureStream(ctx, cfg, func([]byte) {}, nil)
	require.ErrorIs(t, err, assert.AnError)
}

func TestCaptureStreamPauseError(t *testing.T) {
	ctx := context.Background()
	cfg := types.StreamConfig{SampleRate: 8000, Channels: 1, SampleFormat: types.SampleFormatI16}
	h := NewHost(Source{
		Name:       "stuck",
		Kind:       types.DeviceKindInput,
		Config:     cfg,
		PauseError: assert.AnError,
	})
	defer h.Close()

	dev, err := h.DefaultInputDevice(ctx)
	require.NoError(t, err)
	stream, err := dev.NewCaptureStream(ctx, cfg, func([]byte) {}, nil)
	require.NoError(t, err)
	require.NoError(t, stream.Play())

	require.ErrorIs(t, stream.Pause(), assert.AnError)
	require.ErrorIs(t, stream.Close(), assert.AnError)
	assert.Equal(t, 0, h.OpenStreams())
	require.NoError(t, stream.Close())
}

func TestGenerators(t *testing.T) {
	sine := Sine(8, 1, 1)
	assert.InDelta(t, 0, sine(0, 0), 1e-6)
	assert.InDelta(t, 1, sine(2, 1), 1e-6)

	ramp := Ramp(4)
	assert.Equal(t, float32(-1), ramp(0, 0))
	assert.Equal(t, float32(-0.5), ramp(0, 1))
	assert.Equal(t, float32(-1), ramp(4, 0))
}
