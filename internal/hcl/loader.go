package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/micron-ops/optexpand/internal/config"
	"github.com/micron-ops/optexpand/internal/ctxlog"
	"github.com/micron-ops/optexpand/internal/expand"
	"github.com/micron-ops/optexpand/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL sweep loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file under paths, in order, into one Sweep.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Sweep, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find sweep files in %s: %w", path, err)
		}
		if len(found) == 0 {
			logger.Warn("No .hcl sweep files found in path.", "path", path)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered sweep files.", "count", len(files))

	sweep := &config.Sweep{}
	parser := hclparse.NewParser()
	for _, file := range files {
		if err := l.loadFile(ctx, parser, file, sweep); err != nil {
			return nil, err
		}
		sweep.Files = append(sweep.Files, file)
	}

	logger.Debug("HCL loading complete.", "options", len(sweep.Options), "has_template", sweep.HasTemplate)
	return sweep, nil
}

func (l *Loader) loadFile(ctx context.Context, parser *hclparse.Parser, file string, sweep *config.Sweep) error {
	logger := ctxlog.FromContext(ctx)

	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}

	var parsed sweepFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	for _, block := range parsed.Options {
		domain, err := translateOption(block)
		if err != nil {
			return fmt.Errorf("%s: option %q: %w", file, block.Name, err)
		}
		if err := sweep.AddOption(expand.Option{Name: block.Name, Domain: domain}); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		logger.Debug("Option loaded.", "file", file, "name", block.Name, "domain", domain)
	}

	if parsed.Template != nil {
		text, ok, diags := renderTemplate(parsed.Template)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate template in %s: %w", file, diags)
		}
		if ok {
			if err := sweep.SetTemplate(text); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("Template loaded.", "file", file, "template", text)
		}
	}
	return nil
}

// translateOption converts an option block into a domain.
func translateOption(b *optionBlock) (expand.Domain, error) {
	set := 0
	for _, present := range []bool{b.Values != nil, b.Range != nil, b.Spec != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return expand.Domain{}, errors.New("exactly one of values, range or spec must be set")
	}

	switch {
	case b.Values != nil:
		if len(*b.Values) == 0 {
			return expand.Domain{}, errors.New("values must not be empty")
		}
		return expand.Enumerated(*b.Values...), nil
	case b.Range != nil:
		d, ok, err := expand.ParseRange(*b.Range)
		if err != nil {
			return expand.Domain{}, err
		}
		if !ok {
			return expand.Domain{}, fmt.Errorf("range %q is not of the form start:end or start:step:end", *b.Range)
		}
		return d, nil
	default:
		return expand.ParseDomain(*b.Spec)
	}
}
