package writers

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emcoin/pkg/api"
)

func sampleResult() api.ResultV1 {
	ll := -31.25
	return api.ResultV1{
		RunID: "r1", Experiments: 5, Tosses: 10,
		InitialA: 0.6, InitialB: 0.5, PA: 0.8, PB: 0.52,
		Iterations: 10, MaxIterations: 10, LogLikelihood: &ll,
	}
}

func sampleTrace(i int) api.TrialTraceV1 {
	return api.TrialTraceV1{
		Iteration: 0, Trial: i, PA: 0.6, PB: 0.5, Heads: 5, Tails: 5,
		RA: 0.25, RB: 0.75, HeadsA: 1.25, TailsA: 1.25, HeadsB: 3.75, TailsB: 3.75,
	}
}

func TestWriteResultFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "text", "tsv"}, Results.Formats())

	var js bytes.Buffer
	require.NoError(t, WriteResult("json", &js, sampleResult(), true))
	var back api.ResultV1
	require.NoError(t, json.Unmarshal(js.Bytes(), &back))
	assert.Equal(t, "r1", back.RunID)
	assert.Equal(t, 0.8, back.PA)

	var tsv bytes.Buffer
	require.NoError(t, WriteResult("tsv", &tsv, sampleResult(), true))
	lines := strings.Split(strings.TrimSpace(tsv.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "run_id\t"))
	assert.True(t, strings.HasPrefix(lines[1], "r1\t5\t10\t0.6\t0.5\t0.8\t0.52\t10\tfalse\t-31.25\t0"))

	tsv.Reset()
	require.NoError(t, WriteResult("tsv", &tsv, sampleResult(), false))
	assert.Equal(t, 1, strings.Count(tsv.String(), "\n"))
}

func TestWriteResultUnknownFormat(t *testing.T) {
	err := WriteResult("yaml", io.Discard, sampleResult(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown result format "yaml"`)
}

func TestTraceWriterText(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartTraceWriter(&buf, "text", true, 1)
	in <- sampleTrace(0)
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "Iteration 0   0.6 0.5\n5 5 0.25 0.75 1.25 1.25 3.75 3.75\n\n", buf.String())
}

func TestTraceWriterTSV(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartTraceWriter(&buf, "tsv", true, 4)
	in <- sampleTrace(0)
	in <- sampleTrace(1)
	close(in)
	require.NoError(t, <-done)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "iteration\ttrial\t"))
	assert.True(t, strings.HasPrefix(lines[2], "0\t1\t0.6\t0.5\t5\t5\t"))
}

func TestTraceWriterJSONL(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartTraceWriter(&buf, "jsonl", false, 4)
	for i := 0; i < 3; i++ {
		in <- sampleTrace(i)
	}
	close(in)
	require.NoError(t, <-done)

	dec := json.NewDecoder(&buf)
	n := 0
	for dec.More() {
		var rec api.TrialTraceV1
		require.NoError(t, dec.Decode(&rec))
		assert.Equal(t, n, rec.Trial)
		n++
	}
	assert.Equal(t, 3, n)
}

func TestTraceWriterUnknownFormat(t *testing.T) {
	in, done := StartTraceWriter(io.Discard, "csv", false, 1)
	in <- sampleTrace(0)
	close(in)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown trace format")
}

type pipeClosed struct{}

func (pipeClosed) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestTraceWriterIgnoresBrokenPipe(t *testing.T) {
	in, done := StartTraceWriter(pipeClosed{}, "tsv", true, 1)
	for i := 0; i < 5; i++ {
		in <- sampleTrace(i)
	}
	close(in)
	assert.NoError(t, <-done)
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(io.EOF))
	assert.False(t, IsBrokenPipe(nil))
	assert.NoError(t, IgnoreBrokenPipe(io.ErrClosedPipe))
	assert.ErrorIs(t, IgnoreBrokenPipe(io.EOF), io.EOF)
}
