// Package synthetic provides a backend whose devices generate signals
// instead of capturing them.
package synthetic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// Source describes one synthetic device.
type Source struct {
	Name      string
	Kind      types.DeviceKind
	Config    types.StreamConfig
	Generator Generator

	// Period is how often the data callback is invoked.
	Period time.Duration

	// Speed makes the stream run faster than real time.
	Speed float64

	// ErrorEvery makes every n-th callback also report a transient error.
	ErrorEvery uint64

	ConfigError    error
	NewStreamError error
	PlayError      error

	// PauseError is returned by Pause after the stream is stopped anyway.
	PauseError error
}

func DefaultSources() []Source {
	return []Source{
		{
			Name:      "Synthetic Microphone",
			Kind:      types.DeviceKindInput,
			Config:    types.StreamConfig{SampleRate: 48000, Channels: 1, SampleFormat: types.SampleFormatI16},
			Generator: Sine(48000, 440, 0.5),
		},
		{
			Name:      "Synthetic Monitor",
			Kind:      types.DeviceKindOutput,
			Config:    types.StreamConfig{SampleRate: 44100, Channels: 2, SampleFormat: types.SampleFormatF32},
			Generator: Sine(44100, 660, 0.25),
		},
	}
}

type Host struct {
	locker  sync.Mutex
	sources []Source
	streams []*CaptureStream
}

var _ types.Host = (*Host)(nil)

func NewHost(sources ...Source) *Host {
	return &Host{
		sources: sources,
	}
}

func (h *Host) Close() error {
	h.locker.Lock()
	streams := h.streams
	h.streams = nil
	h.locker.Unlock()
	for _, s := range streams {
		s.Close()
	}
	return nil
}

func (h *Host) Ping(context.Context) error {
	return nil
}

func (h *Host) Devices(context.Context) ([]types.Device, error) {
	var result []types.Device
	for idx := range h.sources {
		result = append(result, &Device{Host: h, Source: h.sources[idx]})
	}
	return result, nil
}

func (h *Host) DefaultInputDevice(ctx context.Context) (types.Device, error) {
	return h.defaultDevice(types.DeviceKindInput)
}

func (h *Host) DefaultOutputDevice(ctx context.Context) (types.Device, error) {
	return h.defaultDevice(types.DeviceKindOutput)
}

func (h *Host) defaultDevice(kind types.DeviceKind) (types.Device, error) {
	for idx := range h.sources {
		if h.sources[idx].Kind == kind {
			return &Device{Host: h, Source: h.sources[idx]}, nil
		}
	}
	return nil, fmt.Errorf("no synthetic %s device configured", kind)
}

// OpenStreams is the amount of streams which were created and not closed yet.
func (h *Host) OpenStreams() int {
	h.locker.Lock()
	defer h.locker.Unlock()
	return len(h.streams)
}

func (h *Host) addStream(s *CaptureStream) {
	h.locker.Lock()
	defer h.locker.Unlock()
	h.streams = append(h.streams, s)
}

func (h *Host) removeStream(s *CaptureStream) {
	h.locker.Lock()
	defer h.locker.Unlock()
	for idx, candidate := range h.streams {
		if candidate == s {
			h.streams = append(h.streams[:idx], h.streams[idx+1:]...)
			return
		}
	}
}
