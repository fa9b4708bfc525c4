package appshell

import (
	"context"
	"io"
	"testing"
)

func TestRunPassesArgsAndCode(t *testing.T) {
	var got []string
	fn := func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 2
	}
	if code := Run(context.Background(), fn, []string{"-n", "3"}, io.Discard, io.Discard); code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
	if len(got) != 2 || got[0] != "-n" || got[1] != "3" {
		t.Fatalf("argv = %q", got)
	}
}

func TestRunCanceledSuccessBecomesInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := func(context.Context, []string, io.Writer, io.Writer) int { return 0 }
	if code := Run(ctx, ok, nil, io.Discard, io.Discard); code != ExitInterrupted {
		t.Fatalf("code = %d, want %d", code, ExitInterrupted)
	}
}

func TestRunCanceledKeepsFailureCode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bad := func(context.Context, []string, io.Writer, io.Writer) int { return 3 }
	if code := Run(ctx, bad, nil, io.Discard, io.Discard); code != 3 {
		t.Fatalf("code = %d, want 3", code)
	}
}
