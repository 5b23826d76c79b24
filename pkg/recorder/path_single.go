package recorder

import (
	"context"
	"slices"
)

// startSingle forwards every converted sample of the input device as is,
// keeping its native channel layout.
func (s *session) startSingle(
	ctx context.Context,
	in *captureSource,
) {
	s.goRun(ctx, func(ctx context.Context) {
		streams, err := s.openStreams(ctx, captureRoute{
			Source:  in,
			Downmix: false,
			OnSamples: func(ctx context.Context, samples []float32) {
				s.delivery.Send(ctx, slices.Clone(samples))
			},
		})
		if err != nil {
			s.fail(ctx, err)
			return
		}
		s.waitStopped()
		s.closeStreams(ctx, streams)
	})
}
