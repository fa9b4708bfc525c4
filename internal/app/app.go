// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"emcoin-core/em"

	"emcoin/internal/cli"
	"emcoin/internal/cliutil"
	"emcoin/internal/config"
	"emcoin/internal/estimate"
	"emcoin/internal/logging"
	"emcoin/internal/output"
	"emcoin/internal/telemetry"
	"emcoin/internal/version"
	"emcoin/internal/writers"
	"emcoin/pkg/api"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitRun      = 1 // estimation failed (degenerate under --degenerate=fail, metrics export)
	ExitUsage    = 2 // bad flags, config, or input data
	ExitWrite    = 3 // stdout/trace write failure
	ExitCanceled = 130
)

// exitError carries an exit code through cobra's RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, err error) error { return &exitError{code: code, err: err} }

const longHelp = `emcoin estimates the heads probability of two coins from experiments whose
coin identity was not recorded, using Expectation-Maximization over a
two-component Bernoulli mixture.

With no data it runs the classic five-experiment walkthrough
(heads 5,9,8,4,7 / tails 5,1,2,6,3, initial guesses 0.6 and 0.5, 10 iterations).

Configuration precedence: defaults < --config YAML < EMCOIN_* env < flags.`

const examples = `  emcoin
  emcoin --trace --iterations 3
  emcoin --heads 5,9,8,4,7 --tails 5,1,2,6,3 -a 0.6 -b 0.5 -o json
  emcoin runs/*.tsv --tolerance 1e-8 --iterations 1000 --history
  emcoin -c run.yaml --metrics-file /var/lib/node_exporter/emcoin.prom`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts cli.Options
	cmd := &cobra.Command{
		Use:           "emcoin [data-file ...]",
		Short:         "Two-coin bias estimation with Expectation-Maximization",
		Long:          longHelp,
		Example:       examples,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("emcoin version {{.Version}}\n")
	cli.Register(cmd.Flags(), &opts)
	return cmd
}

func run(cmd *cobra.Command, opts *cli.Options, args []string, stdout, stderr io.Writer) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.ConfigFile, nil)
	if err != nil {
		return fail(ExitUsage, err)
	}
	opts.Apply(cmd.Flags(), &cfg)
	if len(args) > 0 {
		cfg.Data = append(cfg.Data, args...)
	}
	if cfg.Data, err = cliutil.ExpandPaths(cfg.Data); err != nil {
		return fail(ExitUsage, err)
	}
	if err := cfg.Validate(); err != nil {
		return fail(ExitUsage, err)
	}

	log, err := logging.New(stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Quiet: cfg.Quiet})
	if err != nil {
		return fail(ExitUsage, err)
	}
	shutdown, err := telemetry.SetupTracing(stderr, cfg.OTelStdout)
	if err != nil {
		return fail(ExitRun, err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("trace exporter shutdown", "error", err)
		}
	}()

	var gauges *telemetry.RunGauges
	var promReg prometheus.Registerer
	if cfg.MetricsFile != "" {
		gauges = telemetry.NewRunGauges()
		promReg = gauges.Registry()
	}
	meters, stopMetrics, err := telemetry.SetupMetrics(promReg, stderr, cfg.OTelStdout)
	if err != nil {
		return fail(ExitRun, err)
	}
	defer func() {
		if err := stopMetrics(context.WithoutCancel(ctx)); err != nil {
			log.Warn("metric exporter shutdown", "error", err)
		}
	}()

	set, err := cfg.Dataset()
	if err != nil {
		return fail(ExitUsage, err)
	}
	policy, err := em.ParseDegeneratePolicy(cfg.Degenerate)
	if err != nil {
		return fail(ExitUsage, err)
	}

	req := estimate.Request{
		Set:        set,
		Initial:    em.Params{A: cfg.InitialA, B: cfg.InitialB},
		Iterations: cfg.Iterations,
		Tolerance:  cfg.Tolerance,
		Degenerate: policy,
		History:    cfg.History,
	}

	var (
		traceIn   chan<- api.TrialTraceV1
		traceDone <-chan error
		traceFile *os.File
	)
	if cfg.Trace {
		var dst io.Writer = stderr
		if cfg.TraceFile != "" {
			if traceFile, err = os.Create(cfg.TraceFile); err != nil {
				return fail(ExitUsage, err)
			}
			defer func() { _ = traceFile.Close() }()
			dst = traceFile
		}
		traceIn, traceDone = writers.StartTraceWriter(dst, cfg.TraceFormat, cfg.Header, 256)
		req.OnTrial = func(runID string, t em.TrialTrace) {
			traceIn <- output.ToAPITrace(runID, t)
		}
	}

	rep, runErr := estimate.New(log, estimate.WithMeterProvider(meters)).Run(ctx, req)

	if traceIn != nil {
		close(traceIn)
		if err := <-traceDone; err != nil && runErr == nil {
			return fail(ExitWrite, fmt.Errorf("write trace: %w", err))
		}
		if traceFile != nil {
			if err := traceFile.Close(); err != nil && runErr == nil {
				return fail(ExitWrite, fmt.Errorf("close trace: %w", err))
			}
		}
	}

	switch {
	case runErr == nil:
	case errors.Is(runErr, em.ErrInvalidInput):
		return fail(ExitUsage, runErr)
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		return fail(ExitCanceled, runErr)
	default:
		return fail(ExitRun, runErr)
	}

	if gauges != nil {
		gauges.Observe(rep.Result, rep.Set.Len())
		if err := gauges.WriteTextfile(cfg.MetricsFile); err != nil {
			return fail(ExitRun, err)
		}
	}

	outw := bufio.NewWriter(stdout)
	werr := writers.WriteResult(cfg.Output, outw, output.ToAPIResult(rep, cfg.History), cfg.Header)
	if werr == nil {
		werr = outw.Flush()
	}
	if werr = writers.IgnoreBrokenPipe(werr); werr != nil {
		return fail(ExitWrite, werr)
	}
	return nil
}

// RunContext parses argv, runs one estimation, writes the result to stdout,
// and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(argv)
	err := cmd.ExecuteContext(parent)
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		_, _ = fmt.Fprintln(stderr, "error:", ee.err)
		return ee.code
	}
	// Flag and argument errors come straight from cobra.
	_, _ = fmt.Fprintln(stderr, "error:", err)
	_, _ = fmt.Fprintln(stderr, "Run 'emcoin --help' for usage.")
	return ExitUsage
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
