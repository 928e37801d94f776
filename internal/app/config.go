package app

import (
	"errors"
	"fmt"
)

// Output formats.
const (
	FormatNull  = "null"
	FormatLines = "lines"
)

// ErrMissingTemplate is returned when neither the command line nor a sweep
// file provides a template.
var ErrMissingTemplate = errors.New("missing template")

// OptionArg is a command line option before its domain spec is classified.
type OptionArg struct {
	Name string // without the leading "--"
	Spec string
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Options     []OptionArg
	Template    string
	HasTemplate bool
	SweepPath   string // hcl file or directory

	Format    string
	CountOnly bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if !cfg.HasTemplate && cfg.SweepPath == "" {
		return nil, ErrMissingTemplate
	}

	switch cfg.Format {
	case "":
		cfg.Format = FormatNull
	case FormatNull, FormatLines:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	return &cfg, nil
}
