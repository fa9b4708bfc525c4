package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emcoin-core/trial"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	set, err := cfg.Dataset()
	require.NoError(t, err)
	assert.Equal(t, trial.Textbook(), set)
}

func TestYAMLThenEnv(t *testing.T) {
	path := writeFile(t, "run.yaml", `
heads: [5, 9, 8, 4, 7]
tails: [5, 1, 2, 6, 3]
initial_a: 0.7
iterations: 25
tolerance: 0.0001
output: json
`)
	cfg, err := Load(path, map[string]string{
		"EMCOIN_ITERATIONS": "40",
		"EMCOIN_INITIAL_B":  "0.3",
		"UNRELATED":         "x",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.InitialA)
	assert.Equal(t, 0.3, cfg.InitialB, "env overrides default")
	assert.Equal(t, 40, cfg.Iterations, "env overrides file")
	assert.Equal(t, 1e-4, cfg.Tolerance)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, []int{5, 9, 8, 4, 7}, cfg.Heads)
	require.NoError(t, cfg.Validate())
}

func TestEnvSlices(t *testing.T) {
	cfg, err := Load("", map[string]string{
		"EMCOIN_HEADS": "1,2",
		"EMCOIN_TAILS": "3,2",
	})
	require.NoError(t, err)
	set, err := cfg.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 4, set.Tosses)
	assert.Equal(t, 2, set.Len())
}

func TestYAMLUnknownField(t *testing.T) {
	path := writeFile(t, "bad.yaml", "iterationz: 3\n")
	_, err := Load(path, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterationz")
}

func TestYAMLEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.yaml", "# nothing set\n")
	cfg, err := Load(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), map[string]string{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBadEnvValue(t *testing.T) {
	_, err := Load("", map[string]string{"EMCOIN_ITERATIONS": "ten"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"output", func(c *Config) { c.Output = "xml" }, "Output"},
		{"trace format", func(c *Config) { c.TraceFormat = "csv" }, "TraceFormat"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"degenerate", func(c *Config) { c.Degenerate = "ignore" }, "Degenerate"},
		{"tolerance", func(c *Config) { c.Tolerance = -1 }, "Tolerance"},
		{"tosses", func(c *Config) { c.Tosses = -1 }, "Tosses"},
		{"skewed lists", func(c *Config) { c.Heads = []int{1}; c.Tails = []int{1, 2} }, "1 heads vs 2 tails"},
		{"inline and files", func(c *Config) { c.Heads = []int{1}; c.Tails = []int{1}; c.Data = []string{"x"} }, "conflict"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mut(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDatasetFromFiles(t *testing.T) {
	a := writeFile(t, "a.tsv", "e1 5 5\ne2 9 1\n")
	b := writeFile(t, "b.tsv", "8 2\n")
	cfg := Default()
	cfg.Data = []string{a, b}
	set, err := cfg.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, "e2", set.Trials[1].ID)

	c := writeFile(t, "c.tsv", "1 4\n")
	cfg.Data = []string{a, c}
	_, err = cfg.Dataset()
	assert.True(t, errors.Is(err, trial.ErrTossCount), "got %v", err)
}

func TestDatasetTextbookTossOverride(t *testing.T) {
	cfg := Default()
	cfg.Tosses = 12
	_, err := cfg.Dataset()
	assert.ErrorIs(t, err, trial.ErrTossCount)
}
