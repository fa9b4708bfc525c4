package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ExitInterrupted is the exit code of a run cut short by SIGINT/SIGTERM.
const ExitInterrupted = 130

// RunFunc is an app entry point: argv without the program name in, exit
// code out.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs fn with SIGINT/SIGTERM wired to context cancellation and exits
// with its code. After the first signal the default handlers are restored,
// so a second Ctrl-C kills a run that is slow to wind down.
func Main(fn RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	code := Run(ctx, fn, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// Run calls fn and maps a canceled ctx to ExitInterrupted when fn itself
// reported success.
func Run(ctx context.Context, fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = ExitInterrupted
	}
	return code
}
