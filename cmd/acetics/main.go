package main

import (
	"context"
	"os"
	"os/signal"

	"acetics-cli/internal/cli"
)

func main() {
	// Cancels an in-flight request on ctrl+c; the form reads ctrl+c as a key.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewRootCmd())
	stop()
	os.Exit(code)
}
