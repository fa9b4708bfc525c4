package estimate

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "emcoin.estimate"

// runMetrics are the per-Service instruments.
type runMetrics struct {
	duration   metric.Float64Histogram
	runs       metric.Int64Counter
	iterations metric.Int64Counter
	degenerate metric.Int64Counter
}

func newRunMetrics(mp metric.MeterProvider) (*runMetrics, error) {
	meter := mp.Meter(meterName)
	var (
		m   runMetrics
		err error
	)
	m.duration, err = meter.Float64Histogram(
		"emcoin_run_duration_seconds",
		metric.WithDescription("Duration of EM estimation runs"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	m.runs, err = meter.Int64Counter(
		"emcoin_runs_total",
		metric.WithDescription("Total number of EM estimation runs"),
	)
	if err != nil {
		return nil, err
	}
	m.iterations, err = meter.Int64Counter(
		"emcoin_iterations_total",
		metric.WithDescription("Total EM iterations performed"),
	)
	if err != nil {
		return nil, err
	}
	m.degenerate, err = meter.Int64Counter(
		"emcoin_degenerate_steps_total",
		metric.WithDescription("Iterations where a coin kept its previous estimate"),
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *runMetrics) record(ctx context.Context, elapsed time.Duration, iterations, degenerate int, outcome string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	m.runs.Add(ctx, 1, attrs)
	m.iterations.Add(ctx, int64(iterations))
	if degenerate > 0 {
		m.degenerate.Add(ctx, int64(degenerate))
	}
}
