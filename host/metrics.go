package host

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Call outcomes reported to MetricsRecorder.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// MetricsRecorder records native call metrics.
// Use NewMetricsRecorder for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCall records one native call and its outcome.
	RecordCall(ctx context.Context, native, outcome string)

	// RecordVectors records a change in the number of live vectors.
	RecordVectors(ctx context.Context, delta int64)
}

type otelMetrics struct {
	calls   metric.Int64Counter
	vectors metric.Int64UpDownCounter
}

// NewMetricsRecorder returns a MetricsRecorder backed by the given meter
// provider, or the global provider when nil. If instrument creation fails
// it returns a no-op recorder.
func NewMetricsRecorder(provider metric.MeterProvider) MetricsRecorder {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	m, err := newOtelMetrics(provider.Meter("vecset"))
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	calls, err := meter.Int64Counter("vecset.native.calls",
		metric.WithDescription("Number of native calls by outcome"),
	)
	if err != nil {
		return nil, err
	}
	vectors, err := meter.Int64UpDownCounter("vecset.vectors",
		metric.WithDescription("Number of live vectors in the registry"),
	)
	if err != nil {
		return nil, err
	}
	return &otelMetrics{calls: calls, vectors: vectors}, nil
}

func (m *otelMetrics) RecordCall(ctx context.Context, native, outcome string) {
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("native", native),
		attribute.String("outcome", outcome),
	))
}

func (m *otelMetrics) RecordVectors(ctx context.Context, delta int64) {
	m.vectors.Add(ctx, delta)
}

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

// RecordCall does nothing.
func (NoopMetrics) RecordCall(context.Context, string, string) {}

// RecordVectors does nothing.
func (NoopMetrics) RecordVectors(context.Context, int64) {}
