// internal/cli/options.go
package cli

import (
	"github.com/spf13/pflag"

	"emcoin/internal/config"
)

// Options holds every command-line flag. Only flags the user actually set
// override the file/env configuration (see Apply).
type Options struct {
	ConfigFile string

	// Data
	Heads  []int
	Tails  []int
	Tosses int
	Data   []string

	// EM
	InitialA   float64
	InitialB   float64
	Iterations int
	Tolerance  float64
	Degenerate string

	// Output
	Output   string
	NoHeader bool
	History  bool

	// Trace
	Trace       bool
	TraceFormat string
	TraceFile   string

	// Diagnostics
	LogLevel    string
	LogFormat   string
	Quiet       bool
	MetricsFile string
	OTelStdout  bool
}

// Register wires all flags onto fs. Defaults shown in help come from
// config.Default() so the two never drift.
func Register(fs *pflag.FlagSet, o *Options) {
	d := config.Default()

	fs.StringVarP(&o.ConfigFile, "config", "c", "", "YAML config file")

	// Data
	fs.IntSliceVar(&o.Heads, "heads", nil, "heads per experiment, comma-separated (with --tails)")
	fs.IntSliceVar(&o.Tails, "tails", nil, "tails per experiment, comma-separated (with --heads)")
	fs.IntVar(&o.Tosses, "tosses", d.Tosses, "tosses per experiment (0 = infer from first experiment)")
	fs.StringArrayVarP(&o.Data, "data", "d", nil, "experiment file(s): [id] heads tails per line (repeatable, globs ok)")

	// EM
	fs.Float64VarP(&o.InitialA, "initial-a", "a", d.InitialA, "initial P(heads) guess for coin A, in (0,1)")
	fs.Float64VarP(&o.InitialB, "initial-b", "b", d.InitialB, "initial P(heads) guess for coin B, in (0,1)")
	fs.IntVarP(&o.Iterations, "iterations", "n", d.Iterations, "EM iterations to run")
	fs.Float64Var(&o.Tolerance, "tolerance", d.Tolerance, "stop early once no estimate moves more than this (0 = fixed iterations)")
	fs.StringVar(&o.Degenerate, "degenerate", d.Degenerate, "zero-responsibility policy: hold | fail")

	// Output
	fs.StringVarP(&o.Output, "output", "o", d.Output, "result format: text | json | tsv")
	fs.BoolVar(&o.NoHeader, "no-header", !d.Header, "suppress header line in tsv output")
	fs.BoolVar(&o.History, "history", d.History, "include per-iteration estimates in the result")

	// Trace
	fs.BoolVar(&o.Trace, "trace", d.Trace, "emit a per-trial trace for every iteration")
	fs.StringVar(&o.TraceFormat, "trace-format", d.TraceFormat, "trace format: text | jsonl | tsv")
	fs.StringVar(&o.TraceFile, "trace-file", d.TraceFile, "write the trace here instead of stderr")

	// Diagnostics
	fs.StringVar(&o.LogLevel, "log-level", d.LogLevel, "log level: debug | info | warn | error")
	fs.StringVar(&o.LogFormat, "log-format", d.LogFormat, "log format: text | json")
	fs.BoolVarP(&o.Quiet, "quiet", "q", d.Quiet, "only log errors")
	fs.StringVar(&o.MetricsFile, "metrics-file", d.MetricsFile, "write final-state Prometheus metrics to this textfile")
	fs.BoolVar(&o.OTelStdout, "otel-stdout", d.OTelStdout, "export OpenTelemetry spans to stderr")
}

// Apply copies every flag the user set on fs into cfg.
func (o *Options) Apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("heads", func() { cfg.Heads = o.Heads })
	set("tails", func() { cfg.Tails = o.Tails })
	set("tosses", func() { cfg.Tosses = o.Tosses })
	set("data", func() { cfg.Data = o.Data })
	set("initial-a", func() { cfg.InitialA = o.InitialA })
	set("initial-b", func() { cfg.InitialB = o.InitialB })
	set("iterations", func() { cfg.Iterations = o.Iterations })
	set("tolerance", func() { cfg.Tolerance = o.Tolerance })
	set("degenerate", func() { cfg.Degenerate = o.Degenerate })
	set("output", func() { cfg.Output = o.Output })
	set("no-header", func() { cfg.Header = !o.NoHeader })
	set("history", func() { cfg.History = o.History })
	set("trace", func() { cfg.Trace = o.Trace })
	set("trace-format", func() { cfg.TraceFormat = o.TraceFormat })
	set("trace-file", func() { cfg.TraceFile = o.TraceFile })
	set("log-level", func() { cfg.LogLevel = o.LogLevel })
	set("log-format", func() { cfg.LogFormat = o.LogFormat })
	set("quiet", func() { cfg.Quiet = o.Quiet })
	set("metrics-file", func() { cfg.MetricsFile = o.MetricsFile })
	set("otel-stdout", func() { cfg.OTelStdout = o.OTelStdout })
}
