// core/trial/loader.go
package trial

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadTSV reads a whitespace-separated experiment file. Each non-empty,
// non-comment line is either "heads tails" or "id heads tails". The set's
// toss count is inferred from the first row when tosses is 0.
func LoadTSV(path string, tosses int) (Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Set{}, err
	}
	defer func() { _ = fh.Close() }()
	return ReadTSV(fh, path, tosses)
}

// ReadTSV is LoadTSV over an arbitrary reader; name is used in error messages.
func ReadTSV(r io.Reader, name string, tosses int) (Set, error) {
	var list []Trial
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		var t Trial
		switch len(f) {
		case 2:
		case 3:
			t.ID = f[0]
			f = f[1:]
		default:
			return Set{}, fmt.Errorf("%s:%d: expected 2 or 3 columns ([id] heads tails), got %d", name, ln, len(f))
		}
		var err error
		if t.Heads, err = strconv.Atoi(f[0]); err != nil {
			return Set{}, fmt.Errorf("%s:%d bad heads: %v", name, ln, err)
		}
		if t.Tails, err = strconv.Atoi(f[1]); err != nil {
			return Set{}, fmt.Errorf("%s:%d bad tails: %v", name, ln, err)
		}
		list = append(list, t)
	}
	if err := sc.Err(); err != nil {
		return Set{}, err
	}
	if len(list) == 0 {
		return Set{}, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	if tosses == 0 {
		tosses = list[0].Total()
	}
	s := Set{Trials: list, Tosses: tosses}
	if err := s.Validate(); err != nil {
		return Set{}, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}
