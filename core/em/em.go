// core/em/em.go
package em

import (
	"context"
	"fmt"
	"math"

	"emcoin-core/trial"
)

// Coin names a mixture component.
type Coin int

const (
	CoinA Coin = iota
	CoinB
)

func (c Coin) String() string {
	if c == CoinA {
		return "A"
	}
	return "B"
}

// Params are the current bias estimates, P(heads), for each coin.
type Params struct {
	A float64
	B float64
}

// Swap returns p with the coin labels exchanged.
func (p Params) Swap() Params { return Params{A: p.B, B: p.A} }

// Stats are the expected (responsibility-weighted) head and tail counts
// accumulated for each coin during one E-step.
type Stats struct {
	HeadsA, TailsA float64
	HeadsB, TailsB float64
}

// DegeneratePolicy decides what happens when a coin's M-step denominator is 0.
type DegeneratePolicy int

const (
	// HoldPrevious keeps the coin's previous estimate for that iteration.
	HoldPrevious DegeneratePolicy = iota
	// Fail aborts the run with a *DegenerateEstimateError.
	Fail
)

func (d DegeneratePolicy) String() string {
	if d == Fail {
		return "fail"
	}
	return "hold"
}

// ParseDegeneratePolicy accepts "hold" or "fail".
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch s {
	case "", "hold":
		return HoldPrevious, nil
	case "fail":
		return Fail, nil
	}
	return HoldPrevious, fmt.Errorf("unknown degenerate policy %q (want hold | fail)", s)
}

// TrialTrace is the diagnostic record for one trial in one iteration.
// Params are the estimates the E-step used, not the updated ones.
type TrialTrace struct {
	Iteration int
	Index     int
	Params    Params
	Trial     trial.Trial
	RA, RB    float64
	HeadsA    float64
	TailsA    float64
	HeadsB    float64
	TailsB    float64
}

// IterationSummary reports the state after one M-step.
type IterationSummary struct {
	Iteration     int
	Params        Params
	Stats         Stats
	LogLikelihood float64
	Degenerate    bool
}

// Options configure an Estimator. Zero values mean: no trace, hold on
// degeneracy, no early stop.
type Options struct {
	Initial    Params
	Iterations int

	// Tolerance > 0 stops early once neither estimate moves more than it.
	Tolerance  float64
	Degenerate DegeneratePolicy

	// KeepHistory retains one IterationSummary per iteration in
	// Result.History. Off by default so memory stays flat for long runs.
	KeepHistory bool

	OnTrial     func(TrialTrace)
	OnIteration func(IterationSummary)
}

// Result is the outcome of a full run.
type Result struct {
	Params          Params
	Initial         Params
	Iterations      int // iterations actually performed
	Converged       bool
	LogLikelihood   float64
	DegenerateSteps int
	History         []IterationSummary // only with Options.KeepHistory
}

// Estimator owns the experiment set and the coin parameters across iterations.
type Estimator struct {
	set    trial.Set
	opts   Options
	params Params
	degen  int
}

// New validates inputs and returns an Estimator positioned at opts.Initial.
func New(set trial.Set, opts Options) (*Estimator, error) {
	if err := set.Validate(); err != nil {
		return nil, &InvalidInputError{Field: "experiments", Reason: "bad experiment set", Err: err}
	}
	if opts.Iterations <= 0 {
		return nil, &InvalidInputError{Field: "iterations", Reason: fmt.Sprintf("must be > 0, got %d", opts.Iterations)}
	}
	if err := checkProb("initial_pA", opts.Initial.A); err != nil {
		return nil, err
	}
	if err := checkProb("initial_pB", opts.Initial.B); err != nil {
		return nil, err
	}
	if opts.Initial.A == opts.Initial.B {
		return nil, &InvalidInputError{Field: "initial", Reason: fmt.Sprintf("initial_pA and initial_pB must differ, both %g", opts.Initial.A)}
	}
	if opts.Tolerance < 0 || math.IsNaN(opts.Tolerance) {
		return nil, &InvalidInputError{Field: "tolerance", Reason: fmt.Sprintf("must be ≥ 0, got %g", opts.Tolerance)}
	}
	return &Estimator{set: set, opts: opts, params: opts.Initial}, nil
}

func checkProb(field string, p float64) error {
	if !(p > 0 && p < 1) {
		return &InvalidInputError{Field: field, Reason: fmt.Sprintf("must be in (0,1), got %g", p)}
	}
	return nil
}

// Params returns the current estimates.
func (e *Estimator) Params() Params { return e.params }

// Step runs one E-step and M-step and returns the updated estimates.
// iter is only used to label trace records and errors.
func (e *Estimator) Step(iter int) (Params, error) {
	sum, err := e.step(iter)
	return sum.Params, err
}

func (e *Estimator) step(iter int) (IterationSummary, error) {
	cur := e.params
	var st Stats
	for i, t := range e.set.Trials {
		ra := Responsibility(t, cur)
		rb := 1 - ra
		ha, ta := ra*float64(t.Heads), ra*float64(t.Tails)
		hb, tb := rb*float64(t.Heads), rb*float64(t.Tails)
		st.HeadsA += ha
		st.TailsA += ta
		st.HeadsB += hb
		st.TailsB += tb
		if e.opts.OnTrial != nil {
			e.opts.OnTrial(TrialTrace{
				Iteration: iter, Index: i, Params: cur, Trial: t,
				RA: ra, RB: rb, HeadsA: ha, TailsA: ta, HeadsB: hb, TailsB: tb,
			})
		}
	}

	next := cur
	degenerate := false
	for _, c := range []Coin{CoinA, CoinB} {
		h, tl := st.HeadsA, st.TailsA
		if c == CoinB {
			h, tl = st.HeadsB, st.TailsB
		}
		den := h + tl
		if den == 0 {
			if e.opts.Degenerate == Fail {
				return IterationSummary{Iteration: iter, Params: cur, Stats: st}, &DegenerateEstimateError{Iteration: iter, Coin: c}
			}
			degenerate = true
			continue
		}
		if c == CoinA {
			next.A = h / den
		} else {
			next.B = h / den
		}
	}
	if degenerate {
		e.degen++
	}
	e.params = next
	return IterationSummary{
		Iteration:     iter,
		Params:        next,
		Stats:         st,
		LogLikelihood: LogLikelihood(e.set, next),
		Degenerate:    degenerate,
	}, nil
}

// Run performs up to opts.Iterations iterations. ctx is checked between
// iterations; on cancellation the partial result is returned with ctx.Err().
func (e *Estimator) Run(ctx context.Context) (Result, error) {
	res := Result{
		Initial:       e.opts.Initial,
		Params:        e.params,
		LogLikelihood: LogLikelihood(e.set, e.params),
	}
	for iter := 0; iter < e.opts.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		prev := e.params
		sum, err := e.step(iter)
		if err != nil {
			return res, err
		}
		res.Iterations++
		res.Params = sum.Params
		res.LogLikelihood = sum.LogLikelihood
		res.DegenerateSteps = e.degen
		if e.opts.KeepHistory {
			res.History = append(res.History, sum)
		}
		if e.opts.OnIteration != nil {
			e.opts.OnIteration(sum)
		}
		if e.opts.Tolerance > 0 && maxShift(prev, sum.Params) < e.opts.Tolerance {
			res.Converged = true
			break
		}
	}
	return res, nil
}

func maxShift(a, b Params) float64 {
	return math.Max(math.Abs(a.A-b.A), math.Abs(a.B-b.B))
}

// Run is the one-shot form: validate, iterate the fixed budget, return the
// final estimates.
func Run(set trial.Set, initial Params, iterations int) (Params, error) {
	est, err := New(set, Options{Initial: initial, Iterations: iterations})
	if err != nil {
		return Params{}, err
	}
	res, err := est.Run(context.Background())
	return res.Params, err
}
