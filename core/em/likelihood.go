// core/em/likelihood.go
// Log-space helpers for the two-coin Bernoulli mixture.
//
// A trial with h heads and t tails under bias p has likelihood p^h (1-p)^t
// (the binomial coefficient is shared by both coins and cancels in every
// ratio). With a uniform 0.5 prior over coins:
//
//	L_A = 0.5 p_A^h (1-p_A)^t,  L_B = 0.5 p_B^h (1-p_B)^t,  r_A = L_A / (L_A + L_B)
//
// Everything is evaluated in log space; 0^0 is taken as 1 so that a coin
// estimated at exactly 0 or 1 remains usable.

package em

import (
	"math"

	"emcoin-core/trial"
)

// coinPrior is the uniform prior probability of either coin being drawn.
const coinPrior = 0.5

var logPrior = math.Log(coinPrior)

// xlogy returns x*log(y) with the convention 0*log(0) = 0.
func xlogy(x int, y float64) float64 {
	if x == 0 {
		return 0
	}
	return float64(x) * math.Log(y)
}

// logBernoulli returns log(p^heads (1-p)^tails).
func logBernoulli(t trial.Trial, p float64) float64 {
	return xlogy(t.Heads, p) + xlogy(t.Tails, 1-p)
}

// logSumExp returns log(exp(a) + exp(b)) without overflow.
func logSumExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// Responsibility returns r_A, the posterior probability that coin A produced
// t given p. When both likelihoods are zero it returns 0.5.
func Responsibility(t trial.Trial, p Params) float64 {
	la := logPrior + logBernoulli(t, p.A)
	lb := logPrior + logBernoulli(t, p.B)
	if math.IsInf(la, -1) && math.IsInf(lb, -1) {
		return 0.5
	}
	r := math.Exp(la - logSumExp(la, lb))
	// Clamp rounding spill.
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// LogLikelihood is the observed-data log-likelihood of set under the mixture
// with parameters p, omitting the binomial coefficients (a constant in p).
// It is -Inf when some trial is impossible under both coins.
func LogLikelihood(set trial.Set, p Params) float64 {
	sum := 0.0
	for _, t := range set.Trials {
		sum += logSumExp(logPrior+logBernoulli(t, p.A), logPrior+logBernoulli(t, p.B))
	}
	return sum
}
