package types

import (
	"fmt"
	"strings"
)

type SampleRate uint32

type Channel uint16

// SampleFormat is the native numeric encoding of a single sample as
// reported by a capture device. All multi-byte encodings are little-endian.
type SampleFormat uint8

const (
	SampleFormatUndefined = SampleFormat(iota)
	SampleFormatI8
	SampleFormatI16
	SampleFormatI32
	SampleFormatI64
	SampleFormatU8
	SampleFormatU16
	SampleFormatU32
	SampleFormatU64
	SampleFormatF32
	SampleFormatF64
	EndOfSampleFormat
)

func (f SampleFormat) Size() uint {
	switch f {
	case SampleFormatI8, SampleFormatU8:
		return 1
	case SampleFormatI16, SampleFormatU16:
		return 2
	case SampleFormatI32, SampleFormatU32, SampleFormatF32:
		return 4
	case SampleFormatI64, SampleFormatU64, SampleFormatF64:
		return 8
	default:
		return 0
	}
}

func (f SampleFormat) IsValid() bool {
	return f > SampleFormatUndefined && f < EndOfSampleFormat
}

func (f SampleFormat) String() string {
	switch f {
	case SampleFormatUndefined:
		return "undefined"
	case SampleFormatI8:
		return "i8"
	case SampleFormatI16:
		return "i16"
	case SampleFormatI32:
		return "i32"
	case SampleFormatI64:
		return "i64"
	case SampleFormatU8:
		return "u8"
	case SampleFormatU16:
		return "u16"
	case SampleFormatU32:
		return "u32"
	case SampleFormatU64:
		return "u64"
	case SampleFormatF32:
		return "f32"
	case SampleFormatF64:
		return "f64"
	default:
		return fmt.Sprintf("unknown_format_%d", uint8(f))
	}
}

func ParseSampleFormat(s string) (SampleFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f := SampleFormatUndefined + 1; f < EndOfSampleFormat; f++ {
		if f.String() == s {
			return f, nil
		}
	}
	return SampleFormatUndefined, fmt.Errorf("unknown sample format '%s'", s)
}

// StreamConfig is the configuration a capture stream is opened with.
type StreamConfig struct {
	SampleRate   SampleRate
	Channels     Channel
	SampleFormat SampleFormat
}

func (cfg StreamConfig) BytesPerFrame() uint {
	return uint(cfg.Channels) * cfg.SampleFormat.Size()
}

func (cfg StreamConfig) String() string {
	return fmt.Sprintf("%dHz/%dch/%s", cfg.SampleRate, cfg.Channels, cfg.SampleFormat)
}
