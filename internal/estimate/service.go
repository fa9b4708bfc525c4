// internal/estimate/service.go
package estimate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"emcoin-core/em"
	"emcoin-core/trial"
)

// Request is one estimation job.
type Request struct {
	Set        trial.Set
	Initial    em.Params
	Iterations int
	Tolerance  float64
	Degenerate em.DegeneratePolicy

	// RunID is generated when empty.
	RunID string
	// OnTrial receives every per-trial trace record, tagged with the run ID.
	OnTrial func(runID string, t em.TrialTrace)
}

// Report is the outcome of a completed (or partially completed) run.
type Report struct {
	RunID         string
	Set           trial.Set
	MaxIterations int
	Tolerance     float64
	Result        em.Result
	Elapsed       time.Duration
}

// Service executes requests. The zero value is not usable; use New.
type Service struct {
	log     *slog.Logger
	tracer  trace.Tracer
	meters  metric.MeterProvider
	metrics *runMetrics
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithTracer overrides the global tracer (tests inject a recording provider).
func WithTracer(t trace.Tracer) Option { return func(s *Service) { s.tracer = t } }

// WithMeterProvider sends run metrics to mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) { s.meters = mp }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New returns a Service logging to log (nil discards).
func New(log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		log:    log,
		tracer: otel.Tracer("emcoin.estimate"),
		meters: otel.GetMeterProvider(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	m, err := newRunMetrics(s.meters)
	if err != nil {
		// Runs still work; they just go unmetered.
		log.Warn("run metrics disabled", "error", err)
	}
	s.metrics = m
	return s
}

// Run validates the request, runs the estimator, and returns its report.
// On error the report still carries whatever the estimator completed.
func (s *Service) Run(ctx context.Context, req Request) (Report, error) {
	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	rep := Report{
		RunID:         runID,
		Set:           req.Set,
		MaxIterations: req.Iterations,
		Tolerance:     req.Tolerance,
	}
	log := s.log.With("run_id", runID)

	ctx, span := s.tracer.Start(ctx, "estimate.Run",
		trace.WithAttributes(
			attribute.String("emcoin.run_id", runID),
			attribute.Int("emcoin.experiments", req.Set.Len()),
			attribute.Int("emcoin.tosses", req.Set.Tosses),
			attribute.IntSlice("emcoin.heads", req.Set.Heads()),
			attribute.IntSlice("emcoin.tails", req.Set.Tails()),
			attribute.Float64("emcoin.initial_a", req.Initial.A),
			attribute.Float64("emcoin.initial_b", req.Initial.B),
			attribute.Int("emcoin.max_iterations", req.Iterations),
		),
	)
	defer span.End()

	opts := em.Options{
		Initial:     req.Initial,
		Iterations:  req.Iterations,
		Tolerance:   req.Tolerance,
		Degenerate:  req.Degenerate,
		KeepHistory: req.History,
		OnIteration: func(it em.IterationSummary) {
			span.AddEvent("iteration", trace.WithAttributes(
				attribute.Int("iteration", it.Iteration),
				attribute.Float64("p_a", it.Params.A),
				attribute.Float64("p_b", it.Params.B),
				attribute.Bool("degenerate", it.Degenerate),
			))
			log.Debug("em iteration",
				"iteration", it.Iteration,
				"p_a", it.Params.A,
				"p_b", it.Params.B,
				"log_likelihood", it.LogLikelihood,
			)
			if it.Degenerate {
				log.Warn("coin received zero responsibility; previous estimate held", "iteration", it.Iteration)
			}
		},
	}
	if req.OnTrial != nil {
		opts.OnTrial = func(t em.TrialTrace) { req.OnTrial(runID, t) }
	}

	start := s.now()
	est, err := em.New(req.Set, opts)
	if err != nil {
		s.fail(ctx, span, log, err, 0, 0, start, "invalid")
		return rep, err
	}
	log.Info("em run started",
		"experiments", req.Set.Len(),
		"tosses", req.Set.Tosses,
		"initial_a", req.Initial.A,
		"initial_b", req.Initial.B,
		"iterations", req.Iterations,
	)

	res, err := est.Run(ctx)
	rep.Result = res
	rep.Elapsed = s.now().Sub(start)
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, em.ErrDegenerate):
			outcome = "degenerate"
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			outcome = "canceled"
		}
		s.fail(ctx, span, log, err, res.Iterations, res.DegenerateSteps, start, outcome)
		return rep, err
	}

	span.SetAttributes(
		attribute.Float64("emcoin.p_a", res.Params.A),
		attribute.Float64("emcoin.p_b", res.Params.B),
		attribute.Int("emcoin.iterations", res.Iterations),
		attribute.Bool("emcoin.converged", res.Converged),
	)
	span.SetStatus(codes.Ok, "")
	s.metrics.record(ctx, rep.Elapsed, res.Iterations, res.DegenerateSteps, "ok")
	log.Info("em run finished",
		"p_a", res.Params.A,
		"p_b", res.Params.B,
		"iterations", res.Iterations,
		"converged", res.Converged,
		"log_likelihood", res.LogLikelihood,
		"elapsed", rep.Elapsed,
	)
	return rep, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, log *slog.Logger, err error, iterations, degenerate int, start time.Time, outcome string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.record(ctx, s.now().Sub(start), iterations, degenerate, outcome)
	log.Error("em run failed", "error", err, "outcome", outcome, "iterations", iterations)
}
