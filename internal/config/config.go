// internal/config/config.go
// Layered run configuration: built-in defaults, then an optional YAML file,
// then EMCOIN_* environment variables. CLI flags are applied last by the
// caller (see internal/cli).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "EMCOIN_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is everything one estimation run needs.
type Config struct {
	// Data
	Heads  []int    `yaml:"heads" env:"HEADS"`
	Tails  []int    `yaml:"tails" env:"TAILS"`
	Tosses int      `yaml:"tosses" env:"TOSSES" validate:"gte=0"`
	Data   []string `yaml:"data" env:"DATA"`

	// EM
	InitialA   float64 `yaml:"initial_a" env:"INITIAL_A"`
	InitialB   float64 `yaml:"initial_b" env:"INITIAL_B"`
	Iterations int     `yaml:"iterations" env:"ITERATIONS"`
	Tolerance  float64 `yaml:"tolerance" env:"TOLERANCE" validate:"gte=0"`
	Degenerate string  `yaml:"degenerate" env:"DEGENERATE" validate:"oneof=hold fail"`

	// Output
	Output  string `yaml:"output" env:"OUTPUT" validate:"oneof=text json tsv"`
	Header  bool   `yaml:"header" env:"HEADER"`
	History bool   `yaml:"history" env:"HISTORY"`

	// Trace
	Trace       bool   `yaml:"trace" env:"TRACE"`
	TraceFormat string `yaml:"trace_format" env:"TRACE_FORMAT" validate:"oneof=text jsonl tsv"`
	TraceFile   string `yaml:"trace_file" env:"TRACE_FILE"`

	// Diagnostics
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat   string `yaml:"log_format" env:"LOG_FORMAT" validate:"oneof=text json"`
	Quiet       bool   `yaml:"quiet" env:"QUIET"`
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`
	OTelStdout  bool   `yaml:"otel_stdout" env:"OTEL_STDOUT"`
}

// Default reproduces the classic two-coin walkthrough: initial guesses 0.6
// and 0.5, ten fixed iterations, textbook data (empty data fields).
func Default() Config {
	return Config{
		InitialA:    0.6,
		InitialB:    0.5,
		Iterations:  10,
		Degenerate:  "hold",
		Output:      "text",
		Header:      true,
		TraceFormat: "text",
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}

// Load returns Default() overlaid with the YAML file at path (if non-empty)
// and then the environment (nil means the process environment).
func Load(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(environ); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks the presentation and policy fields. Numeric EM inputs
// (initial guesses, iterations, counts) are checked by the estimator itself.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s=%v fails %q", ErrInvalid, fe.Field(), fe.Value(), fe.ActualTag()+paramSuffix(fe.Param()))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Heads) > 0 || len(c.Tails) > 0 {
		if len(c.Data) > 0 {
			return fmt.Errorf("%w: inline heads/tails conflict with data files", ErrInvalid)
		}
		if len(c.Heads) != len(c.Tails) {
			return fmt.Errorf("%w: %d heads vs %d tails", ErrInvalid, len(c.Heads), len(c.Tails))
		}
	}
	return nil
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}
