package recorder

import (
	"context"
	"time"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/normalize"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/planar"
)

// streamSynchronizer merges the two final queues of the resampling
// path into interleaved chunks of chunkSize frames.
type streamSynchronizer struct {
	session   *session
	input     *sampleQueue
	output    *sampleQueue
	chunkSize int

	inBuf  []float32
	outBuf []float32
}

func newStreamSynchronizer(
	s *session,
	input *sampleQueue,
	output *sampleQueue,
	chunkSize int,
) *streamSynchronizer {
	return &streamSynchronizer{
		session:   s,
		input:     input,
		output:    output,
		chunkSize: chunkSize,
		inBuf:     make([]float32, chunkSize),
		outBuf:    make([]float32, chunkSize),
	}
}

func (ss *streamSynchronizer) run(ctx context.Context) {
	for ss.session.isActive() {
		ss.tick(ctx)
		time.Sleep(ss.session.options.PollInterval)
	}
}

// tick emits one chunk if either side has a full chunk buffered.
func (ss *streamSynchronizer) tick(ctx context.Context) bool {
	if ss.input.Len() < uint(ss.chunkSize) && ss.output.Len() < uint(ss.chunkSize) {
		return false
	}
	ss.emit(ctx, ss.chunkSize)
	return true
}

// flush emits whatever is left in the queues, the last chunk may be shorter.
func (ss *streamSynchronizer) flush(ctx context.Context) {
	for {
		length := int(max(ss.input.Len(), ss.output.Len()))
		if length == 0 {
			return
		}
		ss.emit(ctx, min(length, ss.chunkSize))
	}
}

// emit pops up to length samples per side; a side which has less keeps
// equilibrium in the rest of its slots.
func (ss *streamSynchronizer) emit(ctx context.Context, length int) {
	inBuf := ss.pop(ctx, ss.input, ss.inBuf[:length], sideInput)
	outBuf := ss.pop(ctx, ss.output, ss.outBuf[:length], sideOutput)
	chunk := make([]float32, 2*length)
	planar.Interleave(chunk, inBuf, outBuf)
	ss.session.delivery.Send(ctx, chunk)
}

func (ss *streamSynchronizer) pop(
	ctx context.Context,
	queue *sampleQueue,
	buf []float32,
	name side,
) []float32 {
	n := queue.PopSlice(buf)
	for idx := n; idx < len(buf); idx++ {
		buf[idx] = normalize.Equilibrium
	}
	if underrun := len(buf) - n; underrun > 0 {
		ss.session.metrics.UnderrunSamples.Add(ctx, int64(underrun), withSide(name))
	}
	return buf
}
