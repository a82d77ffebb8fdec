// Package main is the entry point for the regsuite CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/nandrad-tools/regsuite/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.RunContext(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
