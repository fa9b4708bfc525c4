// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"emcoin/pkg/api"
)

// WriteResultJSON encodes the run as two-space indented JSON. HTML escaping
// is off so trial IDs and run IDs print verbatim.
func WriteResultJSON(w io.Writer, r api.ResultV1) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
