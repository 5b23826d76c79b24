package malgo

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type CaptureStream struct {
	Device    *malgo.Device
	Name      string
	OnError   types.ErrorCallback
	closeOnce sync.Once
}

var _ types.CaptureStream = (*CaptureStream)(nil)

func (s *CaptureStream) Play() error {
	if err := s.Device.Start(); err != nil {
		return fmt.Errorf("unable to start '%s': %w", s.Name, err)
	}
	return nil
}

func (s *CaptureStream) Pause() error {
	if err := s.Device.Stop(); err != nil {
		return fmt.Errorf("unable to stop '%s': %w", s.Name, err)
	}
	return nil
}

func (s *CaptureStream) Close() error {
	s.closeOnce.Do(func() {
		s.Device.Uninit()
	})
	return nil
}
