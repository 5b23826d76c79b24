package recorder

import (
	"fmt"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// Config describes the chunks delivered by the current (or the last) session.
type Config struct {
	SampleRate types.SampleRate
	Channels   types.Channel

	// SampleSize is the size in bytes of a native sample of the input device.
	SampleSize uint
}

func (cfg Config) String() string {
	return fmt.Sprintf("%dHz/%dch/%dB", cfg.SampleRate, cfg.Channels, cfg.SampleSize)
}
