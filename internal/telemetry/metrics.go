// internal/telemetry/metrics.go
package telemetry

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// SetupMetrics builds the MeterProvider for one run. With reg set, OTel
// instruments are gathered alongside the run gauges in reg. With stdout set,
// collected metrics are pretty-printed to w when the provider shuts down.
// With neither, it returns a no-op provider.
func SetupMetrics(reg prometheus.Registerer, w io.Writer, stdout bool) (metric.MeterProvider, ShutdownFunc, error) {
	var opts []sdkmetric.Option
	if reg != nil {
		exp, err := promexporter.New(
			promexporter.WithRegisterer(reg),
			promexporter.WithoutTargetInfo(),
		)
		if err != nil {
			return nil, noopShutdown, fmt.Errorf("prometheus metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(exp))
	}
	if stdout {
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, noopShutdown, fmt.Errorf("stdout metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)))
	}
	if len(opts) == 0 {
		return noop.NewMeterProvider(), noopShutdown, nil
	}
	mp := sdkmetric.NewMeterProvider(opts...)
	return mp, func(ctx context.Context) error { return mp.Shutdown(ctx) }, nil
}
