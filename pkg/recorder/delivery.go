package recorder

import (
	"context"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/smallnest/chanx"
)

const (
	deliveryInitCapacity = 16
)

// delivery is the unbounded channel the chunks are handed to the
// consumer through. A slow consumer makes it grow without a limit.
type delivery struct {
	metrics *Metrics
	locker  sync.Mutex
	ch      *chanx.UnboundedChan[[]float32]
	closed  bool
}

func newDelivery(ctx context.Context, metrics *Metrics) *delivery {
	return &delivery{
		metrics: metrics,
		ch:      chanx.NewUnboundedChan[[]float32](ctx, deliveryInitCapacity),
	}
}

func (d *delivery) Out() <-chan []float32 {
	return d.ch.Out
}

// Send never blocks for long. The chunk is discarded if the channel is
// already closed.
func (d *delivery) Send(ctx context.Context, chunk []float32) bool {
	d.locker.Lock()
	defer d.locker.Unlock()
	if d.closed {
		logger.Errorf(ctx, "unable to deliver a chunk of %d samples: the delivery channel is closed", len(chunk))
		d.metrics.DeliveryFailures.Add(ctx, 1)
		return false
	}
	d.ch.In <- chunk
	d.metrics.DeliveredChunks.Add(ctx, 1)
	return true
}

func (d *delivery) Close() {
	d.locker.Lock()
	defer d.locker.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.ch.In)
}
