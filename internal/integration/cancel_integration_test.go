package integration

import (
	"context"
	"io"
	"testing"

	"emcoin/internal/app"
)

func TestCanceledContextExit130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := app.RunContext(ctx, []string{"-n", "1000"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
