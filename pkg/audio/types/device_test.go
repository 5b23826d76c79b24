package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceID(t *testing.T) {
	t.Run("input", func(t *testing.T) {
		id, err := ParseDeviceID("Built-in Microphone (input)")
		require.NoError(t, err)
		assert.Equal(t, DeviceID{Name: "Built-in Microphone", Kind: DeviceKindInput}, id)
		assert.Equal(t, "Built-in Microphone (input)", id.String())
	})
	t.Run("output", func(t *testing.T) {
		id, err := ParseDeviceID("  Speakers (output) ")
		require.NoError(t, err)
		assert.Equal(t, DeviceID{Name: "Speakers", Kind: DeviceKindOutput}, id)
	})
	t.Run("nested_parentheses", func(t *testing.T) {
		id, err := ParseDeviceID("USB Audio (2- Device) (input)")
		require.NoError(t, err)
		assert.Equal(t, "USB Audio (2- Device)", id.Name)
	})
	t.Run("no_kind", func(t *testing.T) {
		_, err := ParseDeviceID("Speakers")
		require.Error(t, err)
	})
	t.Run("empty_name", func(t *testing.T) {
		_, err := ParseDeviceID(" (output)")
		require.Error(t, err)
	})
}

func TestSampleFormat(t *testing.T) {
	for f := SampleFormatUndefined + 1; f < EndOfSampleFormat; f++ {
		t.Run(f.String(), func(t *testing.T) {
			assert.True(t, f.IsValid())
			assert.NotZero(t, f.Size())
			parsed, err := ParseSampleFormat(f.String())
			require.NoError(t, err)
			assert.Equal(t, f, parsed)
		})
	}
	assert.False(t, SampleFormatUndefined.IsValid())
	assert.False(t, EndOfSampleFormat.IsValid())
	assert.Zero(t, EndOfSampleFormat.Size())

	cfg := StreamConfig{SampleRate: 48000, Channels: 2, SampleFormat: SampleFormatI16}
	assert.Equal(t, uint(4), cfg.BytesPerFrame())
	assert.Equal(t, "48000Hz/2ch/i16", cfg.String())
}
