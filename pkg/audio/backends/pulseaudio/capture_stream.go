package pulseaudio

import (
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type CaptureStream struct {
	*pulse.RecordStream
	Name    string
	OnError types.ErrorCallback
}

var _ types.CaptureStream = (*CaptureStream)(nil)

func newCaptureStream(
	name string,
	pulseStream *pulse.RecordStream,
	onError types.ErrorCallback,
) *CaptureStream {
	return &CaptureStream{
		RecordStream: pulseStream,
		Name:         name,
		OnError:      onError,
	}
}

func (stream *CaptureStream) Play() error {
	stream.RecordStream.Start()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("an error occurred while starting recording from '%s': %w", stream.Name, err)
	}
	return nil
}

func (stream *CaptureStream) Pause() error {
	stream.RecordStream.Stop()
	if err := stream.Error(); err != nil {
		stream.OnError(fmt.Errorf("recording from '%s' ended with an error: %w", stream.Name, err))
	}
	return nil
}

func (stream *CaptureStream) Close() (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("got a panic: %v", r)
		}
	}()
	stream.RecordStream.Stop()
	stream.RecordStream.Close()
	return
}
