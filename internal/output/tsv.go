package output

import (
	"fmt"
	"io"

	"emcoin/pkg/api"
)

// WriteResultTSV prints the run as a single TSV row, optionally headed.
func WriteResultTSV(w io.Writer, r api.ResultV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, ResultTSVHeader); err != nil {
			return err
		}
	}
	ll := "-Inf"
	if r.LogLikelihood != nil {
		ll = Num(*r.LogLikelihood)
	}
	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%d\t%t\t%s\t%d\n",
		r.RunID, r.Experiments, r.Tosses, Num(r.InitialA), Num(r.InitialB),
		Num(r.PA), Num(r.PB), r.Iterations, r.Converged, ll, r.DegenerateSteps,
	)
	return err
}

// WriteTraceTSV prints one trace record as a TSV row.
func WriteTraceTSV(w io.Writer, t api.TrialTraceV1) error {
	_, err := fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
		t.Iteration, t.Trial, Num(t.PA), Num(t.PB), t.Heads, t.Tails,
		Num(t.RA), Num(t.RB), Num(t.HeadsA), Num(t.TailsA), Num(t.HeadsB), Num(t.TailsB),
	)
	return err
}
