// core/trial/trial.go
// Coin-toss experiment records and the ordered sets the estimator consumes.
//
// This package has no app/output deps; em can import it cleanly.

package trial

import (
	"errors"
	"fmt"
)

// Trial is one experiment: a fixed number of tosses of an unknown coin.
type Trial struct {
	ID    string // optional label; empty for inline data
	Heads int
	Tails int
}

// Total is the number of tosses in the trial.
func (t Trial) Total() int { return t.Heads + t.Tails }

// Set is an ordered experiment set. Tosses is the declared toss count
// that every trial must sum to.
type Set struct {
	Trials []Trial
	Tosses int
}

var (
	ErrEmpty      = errors.New("experiment set is empty")
	ErrTossCount  = errors.New("toss count mismatch")
	ErrNegative   = errors.New("negative count")
	ErrBadTosses  = errors.New("tosses per experiment must be > 0")
	ErrLengthSkew = errors.New("heads and tails lists differ in length")
)

// Textbook returns the five-experiment, ten-toss dataset used in the
// classic two-coin EM walkthrough.
func Textbook() Set {
	s, _ := FromCounts([]int{5, 9, 8, 4, 7}, []int{5, 1, 2, 6, 3}, 10)
	return s
}

// FromCounts builds a Set from parallel heads/tails lists. If tosses is 0
// it is inferred from the first trial.
func FromCounts(heads, tails []int, tosses int) (Set, error) {
	if len(heads) != len(tails) {
		return Set{}, fmt.Errorf("%w: %d heads vs %d tails", ErrLengthSkew, len(heads), len(tails))
	}
	trials := make([]Trial, len(heads))
	for i := range heads {
		trials[i] = Trial{Heads: heads[i], Tails: tails[i]}
	}
	if tosses == 0 && len(trials) > 0 {
		tosses = trials[0].Total()
	}
	s := Set{Trials: trials, Tosses: tosses}
	return s, s.Validate()
}

// Validate checks the set invariants: non-empty, non-negative counts, and
// heads+tails == Tosses for every trial.
func (s Set) Validate() error {
	if len(s.Trials) == 0 {
		return ErrEmpty
	}
	if s.Tosses <= 0 {
		return ErrBadTosses
	}
	for i, t := range s.Trials {
		if t.Heads < 0 || t.Tails < 0 {
			return fmt.Errorf("trial %s: %w (heads=%d tails=%d)", s.label(i), ErrNegative, t.Heads, t.Tails)
		}
		if t.Total() != s.Tosses {
			return fmt.Errorf("trial %s: %w (heads+tails=%d, want %d)", s.label(i), ErrTossCount, t.Total(), s.Tosses)
		}
	}
	return nil
}

// Len returns the number of trials.
func (s Set) Len() int { return len(s.Trials) }

// Heads returns the heads counts in set order.
func (s Set) Heads() []int {
	out := make([]int, len(s.Trials))
	for i, t := range s.Trials {
		out[i] = t.Heads
	}
	return out
}

// Tails returns the tails counts in set order.
func (s Set) Tails() []int {
	out := make([]int, len(s.Trials))
	for i, t := range s.Trials {
		out[i] = t.Tails
	}
	return out
}

// Concat appends other's trials after s's. Both sets must declare the same
// toss count (a zero count adopts the other's).
func (s Set) Concat(other Set) (Set, error) {
	tosses := s.Tosses
	switch {
	case tosses == 0:
		tosses = other.Tosses
	case other.Tosses != 0 && other.Tosses != tosses:
		return Set{}, fmt.Errorf("%w: cannot merge sets of %d and %d tosses", ErrTossCount, tosses, other.Tosses)
	}
	trials := make([]Trial, 0, len(s.Trials)+len(other.Trials))
	trials = append(trials, s.Trials...)
	trials = append(trials, other.Trials...)
	return Set{Trials: trials, Tosses: tosses}, nil
}

func (s Set) label(i int) string {
	if id := s.Trials[i].ID; id != "" {
		return fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf("#%d", i+1)
}
