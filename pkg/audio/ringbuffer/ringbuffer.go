// Package ringbuffer implements a fixed-capacity lock-free queue of
// canonical samples for exactly one producer and one consumer.
//
// The producer never blocks: samples that do not fit are dropped and
// counted.
package ringbuffer

import (
	"fmt"
	"sync/atomic"
)

type RingBuffer struct {
	buf  []float32
	mask uint64

	// head is only written by the producer, tail only by the consumer.
	head    atomic.Uint64
	tail    atomic.Uint64
	dropped atomic.Uint64
	cap     uint64
}

// MaxCapacity is the largest capacity New accepts.
const MaxCapacity = 1 << 62

// New returns a queue able to hold at least capacity samples.
func New(capacity uint) *RingBuffer {
	if capacity == 0 {
		panic(fmt.Errorf("capacity must be positive"))
	}
	if uint64(capacity) > MaxCapacity {
		panic(fmt.Errorf("capacity %d is above the maximum %d", capacity, uint64(MaxCapacity)))
	}
	size := uint64(1)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &RingBuffer{
		buf:  make([]float32, size),
		mask: size - 1,
		cap:  uint64(capacity),
	}
}

func (r *RingBuffer) Cap() uint {
	return uint(r.cap)
}

// Len is the amount of samples available to the consumer.
func (r *RingBuffer) Len() uint {
	return uint(r.head.Load() - r.tail.Load())
}

// Dropped is the total amount of samples rejected because the queue was full.
func (r *RingBuffer) Dropped() uint64 {
	return r.dropped.Load()
}

// PushSlice appends as many samples as fit and returns their amount;
// the rest is dropped.
func (r *RingBuffer) PushSlice(vs []float32) int {
	head := r.head.Load()
	n := r.reserve(head, uint64(len(vs)))
	for i := uint64(0); i < n; i++ {
		r.buf[(head+i)&r.mask] = vs[i]
	}
	r.head.Store(head + n)
	return int(n)
}

// Fill pushes count copies of v.
func (r *RingBuffer) Fill(v float32, count uint) int {
	head := r.head.Load()
	n := r.reserve(head, uint64(count))
	for i := uint64(0); i < n; i++ {
		r.buf[(head+i)&r.mask] = v
	}
	r.head.Store(head + n)
	return int(n)
}

func (r *RingBuffer) reserve(head uint64, n uint64) uint64 {
	free := r.cap - (head - r.tail.Load())
	if n > free {
		r.dropped.Add(n - free)
		n = free
	}
	return n
}

// PopSlice moves up to len(dst) of the oldest samples into dst and
// returns their amount.
func (r *RingBuffer) PopSlice(dst []float32) int {
	tail := r.tail.Load()
	n := r.head.Load() - tail
	if uint64(len(dst)) < n {
		n = uint64(len(dst))
	}
	for i := uint64(0); i < n; i++ {
		dst[i] = r.buf[(tail+i)&r.mask]
	}
	r.tail.Store(tail + n)
	return int(n)
}
