package portaudio

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/gordonklaus/portaudio"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type CaptureStream struct {
	PortAudioStream *portaudio.Stream
	Name            string
	closeOnce       sync.Once
	closeErr        error
}

var _ types.CaptureStream = (*CaptureStream)(nil)

func newCaptureStream[T uint8 | int8 | int16 | int32 | float32](
	ctx context.Context,
	info *portaudio.DeviceInfo,
	cfg types.StreamConfig,
	onData types.DataCallback,
	onError types.ErrorCallback,
) (*CaptureStream, error) {
	var sample T
	logger.Debugf(ctx, "newCaptureStream: %T, %s, '%s'", sample, cfg, info.Name)

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   info,
			Channels: int(cfg.Channels),
			Latency:  info.DefaultLowInputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: portaudio.FramesPerBufferUnspecified,
	}
	stream, err := portaudio.OpenStream(params, func(
		in []T,
		_ portaudio.StreamCallbackTimeInfo,
		flags portaudio.StreamCallbackFlags,
	) {
		if flags&portaudio.InputOverflow != 0 {
			onError(fmt.Errorf("input overflow on '%s': some samples were discarded by the backend", info.Name))
		}
		if len(in) == 0 {
			return
		}
		ptr := unsafe.SliceData(in)
		onData(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(in)*int(unsafe.Sizeof(sample))))
	})
	if err != nil {
		return nil, err
	}

	return &CaptureStream{
		PortAudioStream: stream,
		Name:            info.Name,
	}, nil
}

func (s *CaptureStream) Play() error {
	if err := s.PortAudioStream.Start(); err != nil {
		return fmt.Errorf("unable to start the stream on '%s': %w", s.Name, err)
	}
	return nil
}

func (s *CaptureStream) Pause() error {
	if err := s.PortAudioStream.Stop(); err != nil {
		return fmt.Errorf("unable to stop the stream on '%s': %w", s.Name, err)
	}
	return nil
}

func (s *CaptureStream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.PortAudioStream.Close()
	})
	return s.closeErr
}
