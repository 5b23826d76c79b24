package recorder

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/observability"
)

// session is one Start..Stop cycle. Its goroutines only ever look at
// their own session's flag, so a slowly exiting goroutine cannot
// observe the flag of a session started after it.
type session struct {
	options  Options
	metrics  *Metrics
	delivery *delivery

	active    atomic.Bool
	waitGroup sync.WaitGroup
	done      chan struct{}

	// onFailure is called when a goroutine of the session gave up on its own.
	onFailure func(*session)
}

func newSession(
	ctx context.Context,
	options Options,
	metrics *Metrics,
	onFailure func(*session),
) *session {
	s := &session{
		options:   options,
		metrics:   metrics,
		delivery:  newDelivery(ctx, metrics),
		done:      make(chan struct{}),
		onFailure: onFailure,
	}
	s.active.Store(true)
	return s
}

func (s *session) isActive() bool {
	return s.active.Load()
}

// stop only flips the flag; the goroutines notice it on their next poll.
func (s *session) stop() bool {
	return s.active.CompareAndSwap(true, false)
}

func (s *session) fail(ctx context.Context, err error) {
	logger.Errorf(ctx, "the recording session failed: %v", err)
	if s.stop() && s.onFailure != nil {
		s.onFailure(s)
	}
}

func (s *session) goRun(ctx context.Context, fn func(ctx context.Context)) {
	s.waitGroup.Add(1)
	observability.Go(ctx, func(ctx context.Context) {
		defer s.waitGroup.Done()
		fn(ctx)
	})
}

// launch must be called after all goroutines of the session are
// started: the delivery channel is closed once they all returned.
func (s *session) launch(ctx context.Context) {
	s.metrics.ActiveSessions.Add(ctx, 1)
	observability.Go(ctx, func(ctx context.Context) {
		s.waitGroup.Wait()
		s.delivery.Close()
		s.metrics.ActiveSessions.Add(ctx, -1)
		logger.Debugf(ctx, "the recording session released everything")
		close(s.done)
	})
}

func (s *session) wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// waitStopped polls the flag with the clock delay.
func (s *session) waitStopped() {
	for s.isActive() {
		time.Sleep(s.options.ClockDelay)
	}
}

// push never blocks: whatever does not fit into the queue is dropped.
// Only the first drop of an overflow is logged, the rest is only counted.
func (s *session) push(
	ctx context.Context,
	queue *sampleQueue,
	samples []float32,
) {
	if len(samples) == 0 {
		return
	}
	n := queue.PushSlice(samples)
	dropped := len(samples) - n
	if dropped == 0 {
		if queue.overflowing.CompareAndSwap(true, false) {
			logger.Debugf(ctx, "the %s queue accepts samples again", queue.name)
		}
		return
	}
	s.metrics.DroppedSamples.Add(ctx, int64(dropped), withQueue(queue.name))
	if queue.overflowing.CompareAndSwap(false, true) {
		logger.Warnf(ctx, "the %s queue is full, dropping samples until the consumer catches up", queue.name)
	}
}
