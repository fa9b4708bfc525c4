package config

import (
	"fmt"

	"emcoin-core/trial"
)

// Dataset resolves the experiment set: inline heads/tails, else the data
// files in order, else the built-in textbook set.
func (c Config) Dataset() (trial.Set, error) {
	switch {
	case len(c.Heads) > 0 || len(c.Tails) > 0:
		return trial.FromCounts(c.Heads, c.Tails, c.Tosses)
	case len(c.Data) > 0:
		var set trial.Set
		for _, path := range c.Data {
			part, err := trial.LoadTSV(path, c.Tosses)
			if err != nil {
				return trial.Set{}, err
			}
			if set, err = set.Concat(part); err != nil {
				return trial.Set{}, fmt.Errorf("%s: %w", path, err)
			}
		}
		return set, nil
	}
	set := trial.Textbook()
	if c.Tosses != 0 && c.Tosses != set.Tosses {
		return trial.Set{}, fmt.Errorf("built-in dataset has %d tosses per experiment, --tosses=%d: %w", set.Tosses, c.Tosses, trial.ErrTossCount)
	}
	return set, nil
}
