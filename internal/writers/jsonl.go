// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"emcoin/internal/jsonlutil"
	"emcoin/pkg/api"
)

// StartTraceJSONLWriter streams each trace record as one JSON line (v1).
func StartTraceJSONLWriter(out io.Writer, bufSize int) (chan<- api.TrialTraceV1, <-chan error) {
	return jsonlutil.Start[api.TrialTraceV1](out, bufSize,
		func(enc *json.Encoder, t api.TrialTraceV1) error { return enc.Encode(t) },
		IsBrokenPipe,
	)
}
