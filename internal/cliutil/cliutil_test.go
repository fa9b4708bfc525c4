package cliutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tsv")
	b := filepath.Join(dir, "b.tsv")
	require.NoError(t, os.WriteFile(a, []byte("5 5\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("9 1\n"), 0o644))

	got, err := ExpandPaths([]string{b, filepath.Join(dir, "*.tsv")})
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, got, "literal first, duplicate from glob dropped")
}

func TestExpandPathsNoMatch(t *testing.T) {
	_, err := ExpandPaths([]string{filepath.Join(t.TempDir(), "*.tsv")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input matched")
}

func TestExpandPathsBadPattern(t *testing.T) {
	_, err := ExpandPaths([]string{"[unterminated"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad glob")
}

func TestExpandPathsLiteralPassThrough(t *testing.T) {
	got, err := ExpandPaths([]string{"missing.tsv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"missing.tsv"}, got)
}
