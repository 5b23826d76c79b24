package synthetic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/normalize"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
	"github.com/xaionaro-go/observability"
)

// CaptureStream invokes the data callback from its own goroutine at the
// source's period, producing as many frames as elapsed since Play.
type CaptureStream struct {
	host    *Host
	source  Source
	config  types.StreamConfig
	onData  types.DataCallback
	onError types.ErrorCallback
	ctx     context.Context

	locker     sync.Mutex
	cancelFunc context.CancelFunc
	waitGroup  sync.WaitGroup
	closed     bool

	frame     uint64
	callbacks uint64
	buffer    []byte
}

var _ types.CaptureStream = (*CaptureStream)(nil)

func newCaptureStream(
	ctx context.Context,
	host *Host,
	source Source,
	cfg types.StreamConfig,
	onData types.DataCallback,
	onError types.ErrorCallback,
) *CaptureStream {
	return &CaptureStream{
		host:    host,
		source:  source,
		config:  cfg,
		onData:  onData,
		onError: onError,
		ctx:     ctx,
	}
}

func (s *CaptureStream) Play() error {
	if s.source.PlayError != nil {
		return s.source.PlayError
	}

	s.locker.Lock()
	defer s.locker.Unlock()
	if s.closed {
		return fmt.Errorf("stream '%s' is closed", s.source.Name)
	}
	if s.cancelFunc != nil {
		return nil
	}

	ctx, cancelFunc := context.WithCancel(s.ctx)
	s.cancelFunc = cancelFunc
	s.waitGroup.Add(1)
	observability.Go(ctx, func(ctx context.Context) {
		defer s.waitGroup.Done()
		s.loop(ctx)
	})
	return nil
}

func (s *CaptureStream) Pause() error {
	s.locker.Lock()
	cancelFunc := s.cancelFunc
	s.cancelFunc = nil
	s.locker.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}
	s.waitGroup.Wait()
	return s.source.PauseError
}

func (s *CaptureStream) Close() error {
	s.locker.Lock()
	alreadyClosed := s.closed
	s.closed = true
	s.locker.Unlock()
	if alreadyClosed {
		return nil
	}

	pauseErr := s.Pause()
	s.host.removeStream(s)
	if pauseErr != nil {
		return fmt.Errorf("unable to pause stream '%s': %w", s.source.Name, pauseErr)
	}
	return nil
}

func (s *CaptureStream) loop(ctx context.Context) {
	logger.Debugf(ctx, "loop[%s]", s.source.Name)
	defer logger.Debugf(ctx, "/loop[%s]", s.source.Name)

	ticker := time.NewTicker(s.source.Period)
	defer ticker.Stop()

	startedAt := time.Now()
	startFrame := s.frame
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		elapsed := time.Since(startedAt).Seconds() * s.source.Speed
		due := startFrame + uint64(elapsed*float64(s.config.SampleRate))
		if due <= s.frame {
			continue
		}
		s.emit(due - s.frame)
	}
}

func (s *CaptureStream) emit(frames uint64) {
	channels := int(s.config.Channels)
	sampleSize := int(s.config.SampleFormat.Size())
	size := int(frames) * channels * sampleSize
	if cap(s.buffer) < size {
		s.buffer = make([]byte, size)
	}
	s.buffer = s.buffer[:size]

	for f := 0; f < int(frames); f++ {
		for c := 0; c < channels; c++ {
			v := s.source.Generator(s.frame+uint64(f), c)
			normalize.Encode(s.config.SampleFormat, s.buffer[(f*channels+c)*sampleSize:], v)
		}
	}
	s.frame += frames

	s.callbacks++
	if s.onError != nil && s.source.ErrorEvery > 0 && s.callbacks%s.source.ErrorEvery == 0 {
		s.onError(fmt.Errorf("synthetic transient error #%d on '%s'", s.callbacks/s.source.ErrorEvery, s.source.Name))
	}
	s.onData(s.buffer)
}
