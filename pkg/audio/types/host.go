package types

import (
	"context"
	"io"
)

// Host is an audio backend able to resolve capture devices.
//
// The output device is the loopback (monitor) source of the default
// playback device, so capturing it yields what is being played.
type Host interface {
	io.Closer
	Ping(ctx context.Context) error
	Devices(ctx context.Context) ([]Device, error)
	DefaultInputDevice(ctx context.Context) (Device, error)
	DefaultOutputDevice(ctx context.Context) (Device, error)
}
