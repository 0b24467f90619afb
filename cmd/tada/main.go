package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// No subcommand starts the interactive view; see `tada --help`.
	err := cli.NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
	}
	stop()
	os.Exit(cli.ExitCode(err))
}
