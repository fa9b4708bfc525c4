// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"emcoin/pkg/api"
)

// WriteResultText prints a human-readable summary, plus the iteration table
// when the result carries history.
func WriteResultText(w io.Writer, r api.ResultV1) error {
	ll := "-Inf"
	if r.LogLikelihood != nil {
		ll = Fixed(*r.LogLikelihood)
	}
	stop := "fixed"
	if r.Tolerance > 0 {
		stop = fmt.Sprintf("tolerance %s, converged=%t", Num(r.Tolerance), r.Converged)
	}
	_, err := fmt.Fprintf(w,
		"run\t%s\nexperiments\t%d × %d tosses\ninitial\tA=%s\tB=%s\niterations\t%d/%d (%s)\np_A\t%s\np_B\t%s\nlog_likelihood\t%s\n",
		r.RunID, r.Experiments, r.Tosses, Num(r.InitialA), Num(r.InitialB),
		r.Iterations, r.MaxIterations, stop, Fixed(r.PA), Fixed(r.PB), ll,
	)
	if err != nil {
		return err
	}
	if r.DegenerateSteps > 0 {
		if _, err := fmt.Fprintf(w, "degenerate_steps\t%d\n", r.DegenerateSteps); err != nil {
			return err
		}
	}
	if len(r.History) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", HistoryTSVHeader); err != nil {
		return err
	}
	for _, h := range r.History {
		hl := "-Inf"
		if h.LogLikelihood != nil {
			hl = Fixed(*h.LogLikelihood)
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", h.Iteration, Fixed(h.PA), Fixed(h.PB), hl, h.Degenerate); err != nil {
			return err
		}
	}
	return nil
}

// WriteTraceText prints one trace record in the classic walkthrough layout:
// an "Iteration" line with the estimates in use, the trial's counts with its
// responsibilities and weighted counts, then a blank line.
func WriteTraceText(w io.Writer, t api.TrialTraceV1) error {
	_, err := fmt.Fprintf(w, "Iteration %d   %s %s\n%d %d %s %s %s %s %s %s\n\n",
		t.Iteration, Num(t.PA), Num(t.PB),
		t.Heads, t.Tails, Num(t.RA), Num(t.RB),
		Num(t.HeadsA), Num(t.TailsA), Num(t.HeadsB), Num(t.TailsB),
	)
	return err
}
