package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/logiksutra/bookshelf-cli/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		cli.RenderError(os.Stderr, err)
		os.Exit(1)
	}
}
