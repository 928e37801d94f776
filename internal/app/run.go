package app

import (
	"context"
	"fmt"

	"github.com/micron-ops/optexpand/internal/config"
	"github.com/micron-ops/optexpand/internal/ctxlog"
	"github.com/micron-ops/optexpand/internal/expand"
)

// Run loads the sweep, applies the command line on top of it and writes the
// expanded records. Nothing is written to the output unless every record
// could be produced.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	sweep, err := a.loadSweep(ctx)
	if err != nil {
		return err
	}

	cliOptions := make([]expand.Option, 0, len(a.config.Options))
	for _, arg := range a.config.Options {
		domain, err := expand.ParseDomain(arg.Spec)
		if err != nil {
			return fmt.Errorf("option --%s: %w", arg.Name, err)
		}
		a.logger.Debug("Option parsed.", "name", arg.Name, "domain", domain)
		cliOptions = append(cliOptions, expand.Option{Name: arg.Name, Domain: domain})
	}
	if replaced := sweep.Override(cliOptions); len(replaced) > 0 {
		a.logger.Info("Command line options override sweep file options.", "names", replaced)
	}

	template := sweep.Template
	if a.config.HasTemplate {
		if sweep.HasTemplate {
			a.logger.Info("Command line template overrides sweep file template.")
		}
		template = a.config.Template
	} else if !sweep.HasTemplate {
		return ErrMissingTemplate
	}

	exp, err := expand.New(sweep.Options, template)
	if err != nil {
		return err
	}

	if a.config.CountOnly {
		_, err := fmt.Fprintln(a.outW, exp.Count())
		return err
	}

	var enc expand.Encoder = expand.NullEncoder{}
	if a.config.Format == FormatLines {
		enc = expand.LineEncoder{}
	}
	if err := exp.WriteAll(ctx, a.outW, enc); err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.", "records", exp.Count())
	return nil
}

// loadSweep returns the sweep from the configured path, or an empty one.
func (a *App) loadSweep(ctx context.Context) (*config.Sweep, error) {
	if a.config.SweepPath == "" {
		return &config.Sweep{}, nil
	}

	a.logger.Debug("Loading sweep files...", "path", a.config.SweepPath)
	sweep, err := a.loader.Load(ctx, a.config.SweepPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sweep: %w", err)
	}
	a.logger.Debug("Sweep loaded.", "files", sweep.Files, "options", len(sweep.Options))
	return sweep, nil
}
