package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/turntable/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "turntable",
		Usage:    "Spin a vinyl to page through mood playlists",
		Version:  "0.3.0",
		Flags:    globalFlags(),
		Before:   runner.configure,
		After:    runner.close,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
