package synthetic

import (
	"math"
)

// Generator returns the canonical value of the given channel of the
// given frame of a source.
type Generator func(frame uint64, channel int) float32

// Sine is a tone of the given frequency, identical on every channel.
func Sine(sampleRate float64, frequency float64, amplitude float64) Generator {
	return func(frame uint64, _ int) float32 {
		return float32(amplitude * math.Sin(2*math.Pi*frequency*float64(frame)/sampleRate))
	}
}

// Constant is a DC signal.
func Constant(v float32) Generator {
	return func(uint64, int) float32 {
		return v
	}
}

// Ramp is a sawtooth going from -1 up to 1 every period frames; the
// channels are shifted by one step from each other.
func Ramp(period uint64) Generator {
	return func(frame uint64, channel int) float32 {
		pos := (frame + uint64(channel)) % period
		return float32(-1 + 2*float64(pos)/float64(period))
	}
}
