// internal/telemetry/prometheus.go
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"emcoin-core/em"
)

const namespace = "emcoin"

// RunGauges holds the final-state gauges of one run, in a private registry
// suitable for the node_exporter textfile collector.
type RunGauges struct {
	reg *prometheus.Registry

	bias          *prometheus.GaugeVec
	initialBias   *prometheus.GaugeVec
	logLikelihood prometheus.Gauge
	iterations    prometheus.Gauge
	converged     prometheus.Gauge
	degenerate    prometheus.Gauge
	experiments   prometheus.Gauge
}

// NewRunGauges registers the run gauges on a fresh registry.
func NewRunGauges() *RunGauges {
	g := &RunGauges{
		reg: prometheus.NewRegistry(),
		bias: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "coin_bias",
			Help: "Estimated probability of heads per coin after the last iteration.",
		}, []string{"coin"}),
		initialBias: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "coin_initial_bias",
			Help: "Initial guess of the probability of heads per coin.",
		}, []string{"coin"}),
		logLikelihood: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "log_likelihood",
			Help: "Observed-data log-likelihood at the final estimates.",
		}),
		iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "iterations",
			Help: "EM iterations performed.",
		}),
		converged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "converged",
			Help: "1 if the tolerance stop fired, else 0.",
		}),
		degenerate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "degenerate_steps",
			Help: "Iterations in which a coin held its previous estimate.",
		}),
		experiments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "experiments",
			Help: "Number of experiments in the data set.",
		}),
	}
	g.reg.MustRegister(g.bias, g.initialBias, g.logLikelihood, g.iterations, g.converged, g.degenerate, g.experiments)
	return g
}

// Observe sets every gauge from res.
func (g *RunGauges) Observe(res em.Result, experiments int) {
	g.bias.WithLabelValues("A").Set(res.Params.A)
	g.bias.WithLabelValues("B").Set(res.Params.B)
	g.initialBias.WithLabelValues("A").Set(res.Initial.A)
	g.initialBias.WithLabelValues("B").Set(res.Initial.B)
	g.logLikelihood.Set(res.LogLikelihood)
	g.iterations.Set(float64(res.Iterations))
	if res.Converged {
		g.converged.Set(1)
	} else {
		g.converged.Set(0)
	}
	g.degenerate.Set(float64(res.DegenerateSteps))
	g.experiments.Set(float64(experiments))
}

// Registry exposes the underlying registry (for tests and HTTP exposition).
func (g *RunGauges) Registry() *prometheus.Registry { return g.reg }

// WriteTextfile atomically writes the gauges in text exposition format.
func (g *RunGauges) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, g.reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
