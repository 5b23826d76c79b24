package recorder

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/xaionaro-go/audiorecorder/pkg/recorder"

// Metrics are the instruments of the real-time paths. Every loss of
// samples is counted here in addition to being logged.
type Metrics struct {
	// DroppedSamples counts samples dropped because a queue was full. Attribute "queue".
	DroppedSamples metric.Int64Counter

	// UnderrunSamples counts equilibrium samples substituted for missing ones. Attribute "side".
	UnderrunSamples metric.Int64Counter

	DeliveredChunks  metric.Int64Counter
	DeliveryFailures metric.Int64Counter

	ResamplerErrors metric.Int64Counter

	// StreamErrors counts transient errors reported by capture streams. Attribute "side".
	StreamErrors metric.Int64Counter

	ActiveSessions metric.Int64UpDownCounter
}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.DroppedSamples, err = m.Int64Counter("audiorecorder.queue.dropped_samples",
		metric.WithDescription("Samples dropped because the queue was full."),
	); err != nil {
		return nil, err
	}
	if met.UnderrunSamples, err = m.Int64Counter("audiorecorder.underrun.samples",
		metric.WithDescription("Silence samples substituted on underrun."),
	); err != nil {
		return nil, err
	}
	if met.DeliveredChunks, err = m.Int64Counter("audiorecorder.delivery.chunks",
		metric.WithDescription("Chunks sent to the delivery channel."),
	); err != nil {
		return nil, err
	}
	if met.DeliveryFailures, err = m.Int64Counter("audiorecorder.delivery.failures",
		metric.WithDescription("Chunks discarded because the delivery channel was closed."),
	); err != nil {
		return nil, err
	}
	if met.ResamplerErrors, err = m.Int64Counter("audiorecorder.resampler.errors",
		metric.WithDescription("Resampler initialization and processing failures."),
	); err != nil {
		return nil, err
	}
	if met.StreamErrors, err = m.Int64Counter("audiorecorder.stream.errors",
		metric.WithDescription("Transient errors reported by capture streams."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("audiorecorder.active_sessions",
		metric.WithDescription("Recording sessions which did not release their streams yet."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

func withSide(s side) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("side", string(s)))
}

func withQueue(s side) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("queue", string(s)))
}
