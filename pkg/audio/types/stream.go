package types

import (
	"io"
)

// CaptureStream is a constructed but not necessarily running stream;
// it produces no callbacks until Play is called.
type CaptureStream interface {
	io.Closer
	Play() error
	Pause() error
}
