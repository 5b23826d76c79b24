package pulseaudio

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

func TestPulseWriterKeepsWholeFrames(t *testing.T) {
	var received [][]byte
	w, err := newPulseWriter(types.StreamConfig{
		SampleRate:   48000,
		Channels:     2,
		SampleFormat: types.SampleFormatI16,
	}, func(raw []byte) {
		received = append(received, append([]byte{}, raw...))
	})
	require.NoError(t, err)

	for _, chunk := range [][]byte{{1, 2, 3}, {4, 5, 6, 7, 8, 9, 10}, {11}, {12}} {
		n, err := w.Write(chunk)
		require.NoError(t, err)
		require.Equal(t, len(chunk), n)
	}

	require.Equal(t, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}, received)

	_, err = newPulseWriter(types.StreamConfig{Channels: 1, SampleFormat: types.SampleFormatF64}, nil)
	require.Error(t, err)
}
