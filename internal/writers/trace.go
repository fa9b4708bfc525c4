// internal/writers/trace.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"emcoin/internal/output"
	"emcoin/pkg/api"
)

// TraceFormats are the accepted --trace-format values.
var TraceFormats = []string{"text", "jsonl", "tsv"}

// StartTraceWriter spins up a writer goroutine for per-trial trace records.
// Close the returned channel, then read exactly one value from the error
// channel. Broken pipes are swallowed; the goroutine keeps draining so the
// estimator never blocks on a dead consumer.
func StartTraceWriter(out io.Writer, format string, header bool, bufSize int) (chan<- api.TrialTraceV1, <-chan error) {
	if format == "jsonl" {
		return StartTraceJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.TrialTraceV1, bufSize)
	errCh := make(chan error, 1)

	var row func(io.Writer, api.TrialTraceV1) error
	switch format {
	case "text":
		row = output.WriteTraceText
	case "tsv":
		row = output.WriteTraceTSV
	default:
		go func() {
			for range in {
			}
			errCh <- fmt.Errorf("unknown trace format %q", format)
		}()
		return in, errCh
	}

	go func() {
		bw := bufio.NewWriter(out)
		var err error
		if format == "tsv" && header {
			_, err = fmt.Fprintln(bw, output.TraceTSVHeader)
		}
		for t := range in {
			if err != nil {
				continue
			}
			err = row(bw, t)
		}
		if err == nil {
			err = bw.Flush()
		}
		errCh <- IgnoreBrokenPipe(err)
	}()
	return in, errCh
}
