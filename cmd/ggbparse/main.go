// Package main is the entry point for the standalone GeoGebra Asymptote cleaner.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/yaklabco/markconv/internal/cli"
	"github.com/yaklabco/markconv/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	cmd, err := cli.NewStandaloneCommand(info, "ggbparse")
	if err != nil {
		logging.Default().Error("command setup failed", logging.FieldError, err)
		return cli.ExitInternalError
	}

	return cli.Execute(ctx, cmd)
}
