package recorder

import (
	"context"
	"testing"

	"github.com/facebookincubator/go-belt/tool/logger"
	xlogrus "github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/resampler"
	"go.opentelemetry.io/otel/metric/noop"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	metrics, err := NewMetrics(noop.NewMeterProvider())
	require.NoError(t, err)
	return newSession(context.Background(), DefaultOptions(), metrics, nil)
}

func queueOf(capacity uint, samples ...float32) *sampleQueue {
	q := newSampleQueue(sideInput, capacity)
	q.PushSlice(samples)
	return q
}

func TestStreamSynchronizer(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	input := queueOf(8, 1, 2, 3, 4, 5)
	output := queueOf(8, 10, 20)
	sync := newStreamSynchronizer(s, input, output, 4)

	require.True(t, sync.tick(ctx))
	require.Equal(t, []float32{1, 10, 2, 20, 3, 0, 4, 0}, <-s.delivery.Out())

	require.False(t, sync.tick(ctx))
	sync.flush(ctx)
	require.Equal(t, []float32{5, 0}, <-s.delivery.Out())

	sync.flush(ctx)
	s.delivery.Close()
	_, ok := <-s.delivery.Out()
	require.False(t, ok)
	require.False(t, s.delivery.Send(ctx, []float32{1}))
}

func TestPassthroughSynchronizer(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	sync := newPassthroughSynchronizer(s, 2)

	sync.onOutput(ctx, []float32{7, 8, 9})
	require.Equal(t, uint64(1), sync.output.Dropped())

	sync.onInput(ctx, []float32{1, 2, 3})
	require.Equal(t, []float32{1, 0, 2, 0, 3, 7}, <-s.delivery.Out())

	sync.onInput(ctx, []float32{4, 5, 6})
	require.Equal(t, []float32{4, 8, 5, 0, 6, 0}, <-s.delivery.Out())
}

func TestResamplerStageFlushesOnStop(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	s.stop()

	var in []float32
	for v := float32(1); v <= 16; v++ {
		in = append(in, v)
	}
	inputClosed := make(chan struct{})
	close(inputClosed)
	stage := &resamplerStage{
		session:     s,
		from:        16000,
		to:          8000,
		params:      resampler.Params{Kind: resampler.KindNearest, ChunkSize: 4},
		input:       queueOf(32, in...),
		output:      newSampleQueue(sideResampler, 32),
		inputClosed: inputClosed,
	}
	stage.run(ctx)

	out := make([]float32, 32)
	out = out[:stage.output.PopSlice(out)]
	require.Equal(t, []float32{1, 3, 5, 7, 9, 11, 13, 15}, out)
	require.Equal(t, uint(1), stage.input.Len())
}

func TestSessionPushWarnsOncePerOverflow(t *testing.T) {
	l, hook := logrustest.NewNullLogger()
	ctx := logger.CtxWithLogger(context.Background(), xlogrus.New(l))
	s := newTestSession(t)
	q := newSampleQueue(sideOutput, 2)

	warnings := func() int {
		var count int
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel {
				count++
			}
		}
		return count
	}

	s.push(ctx, q, []float32{1, 2, 3})
	require.True(t, q.overflowing.Load())
	for i := 0; i < 10; i++ {
		s.push(ctx, q, []float32{4})
	}
	require.Equal(t, uint64(11), q.Dropped())
	require.Equal(t, 1, warnings())

	// an empty push does not end the overflow
	s.push(ctx, q, nil)
	require.True(t, q.overflowing.Load())

	q.PopSlice(make([]float32, 2))
	s.push(ctx, q, []float32{5})
	require.False(t, q.overflowing.Load())

	s.push(ctx, q, []float32{6, 7})
	require.True(t, q.overflowing.Load())
	require.Equal(t, 2, warnings())
}
