package em

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerate matches every *DegenerateEstimateError.
	ErrDegenerate = errors.New("degenerate estimate")
)

// InvalidInputError reports a precondition violation detected before any
// iteration runs.
type InvalidInputError struct {
	Field  string
	Reason string
	Err    error // underlying cause, if any
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }
func (e *InvalidInputError) Unwrap() error        { return e.Err }

// DegenerateEstimateError is returned under the Fail policy when a coin's
// expected toss count is zero, leaving its M-step undefined.
type DegenerateEstimateError struct {
	Iteration int
	Coin      Coin
}

func (e *DegenerateEstimateError) Error() string {
	return fmt.Sprintf("degenerate estimate: coin %s received zero responsibility in iteration %d", e.Coin, e.Iteration)
}

func (e *DegenerateEstimateError) Is(target error) bool { return target == ErrDegenerate }
