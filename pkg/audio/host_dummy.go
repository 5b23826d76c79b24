package audio

import (
	"context"
	"fmt"
)

// HostDummy is the backend used when no real backend could be initialized.
type HostDummy struct {
	Err error
}

var _ Host = HostDummy{}

func (HostDummy) Close() error {
	return nil
}

func (h HostDummy) Ping(context.Context) error {
	return h.err()
}

func (h HostDummy) Devices(context.Context) ([]Device, error) {
	return nil, h.err()
}

func (h HostDummy) DefaultInputDevice(context.Context) (Device, error) {
	return nil, h.err()
}

func (h HostDummy) DefaultOutputDevice(context.Context) (Device, error) {
	return nil, h.err()
}

func (h HostDummy) err() error {
	if h.Err == nil {
		return ErrNoBackend
	}
	return fmt.Errorf("%w: %w", ErrNoBackend, h.Err)
}
