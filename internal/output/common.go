package output

import (
	"math"
	"strconv"
)

// ResultTSVHeader is the canonical header row for the tsv result format.
const ResultTSVHeader = "run_id\texperiments\ttosses\tinitial_a\tinitial_b\tp_a\tp_b\titerations\tconverged\tlog_likelihood\tdegenerate_steps"

// HistoryTSVHeader heads the per-iteration table in text output.
const HistoryTSVHeader = "iteration\tp_a\tp_b\tlog_likelihood\tdegenerate"

// TraceTSVHeader is the header row for the tsv trace stream.
const TraceTSVHeader = "iteration\ttrial\tp_a\tp_b\theads\ttails\tr_a\tr_b\theads_a\ttails_a\theads_b\ttails_b"

// Num renders a float with the shortest representation that round-trips.
func Num(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// Fixed renders a float with six decimals; non-finite values print as-is.
func Fixed(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// finite returns &f, or nil when f cannot be encoded as JSON.
func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}
