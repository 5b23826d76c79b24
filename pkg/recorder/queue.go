package recorder

import (
	"sync/atomic"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/ringbuffer"
)

// sampleQueue is a ring buffer named after its producer in logs and metrics.
type sampleQueue struct {
	*ringbuffer.RingBuffer
	name side

	// overflowing is set while the producer drops samples.
	overflowing atomic.Bool
}

func newSampleQueue(name side, capacity uint) *sampleQueue {
	return &sampleQueue{
		RingBuffer: ringbuffer.New(capacity),
		name:       name,
	}
}
