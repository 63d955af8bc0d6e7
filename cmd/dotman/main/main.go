package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dotman/cmd/dotman"
	"github.com/arthur-debert/dotman/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := dotman.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		term := output.NewTerminalFor(os.Stderr, output.DetectFormat(os.Stderr))
		term.Error(err)
		stop()
		os.Exit(1)
	}
}
