// Package chunkreader turns a channel of canonical sample chunks into an
// io.Reader of little-endian float32 PCM.
package chunkreader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/iamcalledrob/circular"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/normalize"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
	"github.com/xaionaro-go/observability"
)

const (
	sampleSize = 4

	// MinBufferSize fits two samples.
	MinBufferSize = 2 * sampleSize
)

// Reader stages the chunks through a bounded circular buffer: if the
// reader is slow, the chunks are left in the channel.
type Reader struct {
	locker      sync.Mutex
	buffer      *circular.Buffer
	pieceSize   int
	resultError error
	readCtx     context.Context

	writeProgressedCh chan struct{}
	readProgressedCh  chan struct{}
}

var _ io.Reader = (*Reader)(nil)

func NewReader(
	ctx context.Context,
	chunks <-chan []float32,
	bufferSize uint,
) (*Reader, error) {
	if bufferSize < MinBufferSize {
		return nil, fmt.Errorf("the buffer size is too small: %d < %d", bufferSize, MinBufferSize)
	}
	r := &Reader{
		buffer:            circular.NewBuffer(int(bufferSize)),
		pieceSize:         int(bufferSize/2) / sampleSize * sampleSize,
		readCtx:           ctx,
		writeProgressedCh: make(chan struct{}),
		readProgressedCh:  make(chan struct{}),
	}
	observability.Go(ctx, func(ctx context.Context) {
		err := r.writerLoop(ctx, chunks)
		r.locker.Lock()
		defer r.locker.Unlock()
		if err == nil {
			err = io.EOF
		}
		r.resultError = err
		r.notifyWriteProgressed(ctx)
	})
	return r, nil
}

func (r *Reader) writerLoop(
	ctx context.Context,
	chunks <-chan []float32,
) (_err error) {
	logger.Tracef(ctx, "writerLoop")
	defer func() { logger.Tracef(ctx, "/writerLoop: %v", _err) }()

	var pcm []byte
	for {
		var chunk []float32
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-chunks:
			if !ok {
				return nil
			}
			chunk = c
		}

		pcm = normalize.EncodeSlice(types.SampleFormatF32, pcm, chunk)
		for rest := pcm; len(rest) > 0; {
			piece := rest[:min(len(rest), r.pieceSize)]
			if err := r.write(ctx, piece); err != nil {
				return err
			}
			rest = rest[len(piece):]
		}
	}
}

func (r *Reader) write(ctx context.Context, piece []byte) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		w, err := r.buffer.Write(piece)
		if err != nil {
			if errors.Is(err, circular.ErrNoSpace) {
				r.waitFor(ctx, r.readProgressedCh)
				continue
			}
			return fmt.Errorf("unable to write to the circular buffer: %w", err)
		}
		if w != len(piece) {
			return fmt.Errorf("wrote != requested: %d != %d", w, len(piece))
		}
		r.notifyWriteProgressed(ctx)
		return nil
	}
}

// Read returns io.EOF only after the channel is closed and everything
// before it was read.
func (r *Reader) Read(p []byte) (_ret int, _err error) {
	logger.Tracef(r.readCtx, "Read, len:%d", len(p))
	defer func() { logger.Tracef(r.readCtx, "/Read, len:%d: %d, %v", len(p), _ret, _err) }()

	r.locker.Lock()
	defer r.locker.Unlock()
	for {
		n, err := r.buffer.Read(p)
		if err == nil {
			if n > 0 {
				oldCh := r.readProgressedCh
				r.readProgressedCh = make(chan struct{})
				close(oldCh)
			}
			return n, nil
		}
		if !errors.Is(err, io.EOF) {
			return n, err
		}
		if r.resultError != nil {
			return 0, r.resultError
		}
		if err := r.readCtx.Err(); err != nil {
			return 0, err
		}
		r.waitFor(r.readCtx, r.writeProgressedCh)
	}
}

func (r *Reader) notifyWriteProgressed(ctx context.Context) {
	logger.Tracef(ctx, "closing writeProgressedCh")
	oldCh := r.writeProgressedCh
	r.writeProgressedCh = make(chan struct{})
	close(oldCh)
}

// waitFor must be called with the locker held; it is released for the
// time of waiting.
func (r *Reader) waitFor(ctx context.Context, ch <-chan struct{}) {
	r.locker.Unlock()
	defer r.locker.Lock()
	select {
	case <-ctx.Done():
	case <-ch:
	}
}
