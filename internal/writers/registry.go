// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"emcoin/internal/output"
	"emcoin/pkg/api"
)

// Registry maps a format name to its handler. Last registration wins.
type Registry[T any] struct {
	kind string
	fns  map[string]func(io.Writer, T, bool) error
}

func newRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, fns: map[string]func(io.Writer, T, bool) error{}}
}

// Register binds format to fn. fn receives the header flag.
func (r *Registry[T]) Register(format string, fn func(w io.Writer, v T, header bool) error) {
	r.fns[format] = fn
}

// Formats lists registered format names, sorted.
func (r *Registry[T]) Formats() []string {
	out := make([]string, 0, len(r.fns))
	for k := range r.fns {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write dispatches v to the handler for format.
func (r *Registry[T]) Write(format string, w io.Writer, v T, header bool) error {
	fn, ok := r.fns[format]
	if !ok {
		return fmt.Errorf("unknown %s format %q (have %s)", r.kind, format, strings.Join(r.Formats(), ", "))
	}
	return fn(w, v, header)
}

// Results renders final run results.
var Results = newRegistry[api.ResultV1]("result")

func init() {
	Results.Register("text", func(w io.Writer, r api.ResultV1, _ bool) error { return output.WriteResultText(w, r) })
	Results.Register("json", func(w io.Writer, r api.ResultV1, _ bool) error { return output.WriteResultJSON(w, r) })
	Results.Register("tsv", output.WriteResultTSV)
}

// WriteResult is the dispatch helper used by the app.
func WriteResult(format string, w io.Writer, r api.ResultV1, header bool) error {
	return Results.Write(format, w, r, header)
}
