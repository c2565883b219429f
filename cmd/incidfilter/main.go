package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/incidfilter/internal/cli"
	"github.com/rshade/incidfilter/internal/lookup"
	"github.com/rshade/incidfilter/pkg/version"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitNotFound  = 3
	exitAmbiguous = 4
)

func run(ctx context.Context) error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit status. Absent results
// and ambiguous lookups get their own codes so scripts can tell them apart.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, lookup.ErrAmbiguous):
		return exitAmbiguous
	case errors.Is(err, lookup.ErrNotFound), errors.Is(err, cli.ErrNoSummary):
		return exitNotFound
	default:
		return exitError
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
