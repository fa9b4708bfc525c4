package trial

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTextbook(t *testing.T) {
	s := Textbook()
	if s.Len() != 5 || s.Tosses != 10 {
		t.Fatalf("textbook set: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("textbook invalid: %v", err)
	}
	if got := s.Heads(); got[1] != 9 || got[3] != 4 {
		t.Fatalf("heads: %v", got)
	}
	if got := s.Tails(); got[0] != 5 || got[4] != 3 {
		t.Fatalf("tails: %v", got)
	}
}

func TestFromCountsErrors(t *testing.T) {
	if _, err := FromCounts([]int{1, 2}, []int{1}, 0); !errors.Is(err, ErrLengthSkew) {
		t.Fatalf("want ErrLengthSkew, got %v", err)
	}
	if _, err := FromCounts(nil, nil, 10); !errors.Is(err, ErrEmpty) {
		t.Fatalf("want ErrEmpty, got %v", err)
	}
	if _, err := FromCounts([]int{5, 6}, []int{5, 5}, 0); !errors.Is(err, ErrTossCount) {
		t.Fatalf("want ErrTossCount, got %v", err)
	}
	if _, err := FromCounts([]int{-1}, []int{11}, 10); !errors.Is(err, ErrNegative) {
		t.Fatalf("want ErrNegative, got %v", err)
	}
	if _, err := FromCounts([]int{0}, []int{0}, 0); !errors.Is(err, ErrBadTosses) {
		t.Fatalf("want ErrBadTosses, got %v", err)
	}
}

func TestConcat(t *testing.T) {
	a := Textbook()
	b, _ := FromCounts([]int{1}, []int{9}, 10)
	c, err := a.Concat(b)
	if err != nil || c.Len() != 6 || c.Trials[5].Heads != 1 {
		t.Fatalf("concat: %+v %v", c, err)
	}
	d, _ := FromCounts([]int{1}, []int{4}, 5)
	if _, err := a.Concat(d); !errors.Is(err, ErrTossCount) {
		t.Fatalf("want ErrTossCount on toss skew, got %v", err)
	}
	e, err := Set{}.Concat(a)
	if err != nil || e.Tosses != 10 {
		t.Fatalf("empty concat should adopt tosses: %+v %v", e, err)
	}
}

func TestLoadTSV(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "trials.tsv")
	data := "# id heads tails\nexp1\t5\t5\nexp2 9 1\n\n8 2\n"
	if err := os.WriteFile(tmp, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadTSV(tmp, 0)
	if err != nil {
		t.Fatalf("LoadTSV: %v", err)
	}
	if s.Len() != 3 || s.Tosses != 10 || s.Trials[0].ID != "exp1" || s.Trials[2].ID != "" || s.Trials[2].Heads != 8 {
		t.Fatalf("LoadTSV parsed %+v", s)
	}
}

func TestReadTSVErrors(t *testing.T) {
	cases := map[string]string{
		"1 2 3 4\n":   "expected 2 or 3 columns",
		"x 5\n":       "bad heads",
		"5 y\n":       "bad tails",
		"# nothing\n": "empty",
		"5 5\n6 5\n":  "toss count mismatch",
		"id 5 five\n": "bad tails",
	}
	for in, want := range cases {
		_, err := ReadTSV(strings.NewReader(in), "mem", 0)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("%q: want %q, got %v", in, want, err)
		}
	}
}

func TestReadTSVDeclaredTosses(t *testing.T) {
	if _, err := ReadTSV(strings.NewReader("5 5\n"), "mem", 12); !errors.Is(err, ErrTossCount) {
		t.Fatalf("want ErrTossCount, got %v", err)
	}
}
