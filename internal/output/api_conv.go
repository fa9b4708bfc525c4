// internal/output/api_conv.go
package output

import (
	"emcoin-core/em"

	"emcoin/internal/estimate"
	"emcoin/pkg/api"
)

// ToAPIResult converts a run report to the v1 wire schema.
func ToAPIResult(r estimate.Report, withHistory bool) api.ResultV1 {
	res := r.Result
	out := api.ResultV1{
		RunID:           r.RunID,
		Experiments:     r.Set.Len(),
		Tosses:          r.Set.Tosses,
		InitialA:        res.Initial.A,
		InitialB:        res.Initial.B,
		PA:              res.Params.A,
		PB:              res.Params.B,
		Iterations:      res.Iterations,
		MaxIterations:   r.MaxIterations,
		Converged:       res.Converged,
		Tolerance:       r.Tolerance,
		LogLikelihood:   finite(res.LogLikelihood),
		DegenerateSteps: res.DegenerateSteps,
	}
	if withHistory {
		out.History = make([]api.IterationV1, 0, len(res.History))
		for _, h := range res.History {
			out.History = append(out.History, api.IterationV1{
				Iteration:     h.Iteration,
				PA:            h.Params.A,
				PB:            h.Params.B,
				LogLikelihood: finite(h.LogLikelihood),
				Degenerate:    h.Degenerate,
			})
		}
	}
	return out
}

// ToAPITrace converts one per-trial trace record.
func ToAPITrace(runID string, tr em.TrialTrace) api.TrialTraceV1 {
	return api.TrialTraceV1{
		RunID:     runID,
		Iteration: tr.Iteration,
		Trial:     tr.Index,
		TrialID:   tr.Trial.ID,
		PA:        tr.Params.A,
		PB:        tr.Params.B,
		Heads:     tr.Trial.Heads,
		Tails:     tr.Trial.Tails,
		RA:        tr.RA,
		RB:        tr.RB,
		HeadsA:    tr.HeadsA,
		TailsA:    tr.TailsA,
		HeadsB:    tr.HeadsB,
		TailsB:    tr.TailsB,
	}
}
