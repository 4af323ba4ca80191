// Package main is the entry point for the mkserver CLI.
//
// mkserver creates Hetzner Cloud servers, one or a numbered group, and
// recreates any server that fails to become ready, up to a bounded number
// of attempts.
//
// For detailed usage information, run:
//
//	mkserver --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/mkserver/cmd/mkserver/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
