package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/micron-ops/optexpand/internal/app"
	"github.com/micron-ops/optexpand/internal/cli"
	"github.com/micron-ops/optexpand/internal/hcl"
)

// main is the entrypoint for the optexpand application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	// The real main function handles errors and exit codes.
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Reported {
				fmt.Fprintln(os.Stderr, "optexpand: try -h for usage")
				os.Exit(exitErr.Code)
			}
			fmt.Fprintf(os.Stderr, "optexpand: %s (try -h)\n", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "optexpand: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hcl.NewLoader()
	optexpandApp := app.NewApp(outW, errW, appConfig, loader)

	return optexpandApp.Run(ctx)
}
