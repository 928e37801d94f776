package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/micron-ops/optexpand/internal/app"
)

var (
	// ErrOddArguments is returned when a name is missing its value.
	ErrOddArguments = errors.New("odd number of arguments before the template: every --name needs a value")
	// ErrDuplicateName is returned when an option is given twice.
	ErrDuplicateName = errors.New("option given more than once")
	// ErrMisplacedToolFlag is returned when a tool flag is written with two
	// dashes, where it would read as an option declaration.
	ErrMisplacedToolFlag = errors.New("tool flags take a single dash and come before the options")
)

// toolFlags are the flag names reserved by the tool itself.
var toolFlags = map[string]struct{}{
	"config":     {},
	"format":     {},
	"count":      {},
	"log-level":  {},
	"log-format": {},
}

// nameRegex matches an option name with its required prefix.
var nameRegex = regexp.MustCompile(`^--(\w+)$`)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
	// Reported is set when the message was already written to stderr.
	Reported bool
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error(), Err: err}
}

// MalformedFieldError is returned for a name that lacks the `--` prefix or is
// not a word.
type MalformedFieldError struct {
	Field string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed field %q: option names look like --name", e.Field)
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Help goes to output; flag errors go to errW, never to the record stream.
func Parse(args []string, output, errW io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("optexpand", flag.ContinueOnError)
	flagSet.SetOutput(errW)
	// The flag package prints the error itself; usage is only shown on -h.
	flagSet.Usage = func() {}

	sweepFlag := flagSet.String("config", "", "Path to an HCL sweep file or a directory of them.")
	formatFlag := flagSet.String("format", app.FormatNull, "Output format. Options: 'null' or 'lines'.")
	countFlag := flagSet.Bool("count", false, "Print the number of records instead of the records.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	toolArgs, expansionArgs := splitArgs(args)
	if err := flagSet.Parse(toolArgs); err != nil {
		if err == flag.ErrHelp {
			flagSet.SetOutput(output)
			printUsage(flagSet)
			return nil, true, nil
		}
		exitErr := usageError(err)
		exitErr.Reported = true
		return nil, false, exitErr
	}
	rest := append(append([]string(nil), flagSet.Args()...), expansionArgs...)
	slog.Debug("Arguments parsed successfully.", "expansion_args", len(rest))

	format := strings.ToLower(*formatFlag)
	if format != app.FormatNull && format != app.FormatLines {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'null' or 'lines'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	options, template, hasTemplate, err := parseExpansion(rest, *sweepFlag != "")
	if err != nil {
		return nil, false, usageError(err)
	}

	config, err := app.NewConfig(app.Config{
		Options:     options,
		Template:    template,
		HasTemplate: hasTemplate,
		SweepPath:   *sweepFlag,
		Format:      format,
		CountOnly:   *countFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, usageError(err)
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// printUsage writes the help text and flag defaults to the flag set output.
func printUsage(flagSet *flag.FlagSet) {
	fmt.Fprint(flagSet.Output(), `
optexpand - expand option domains into NUL-separated command records.

Usage:
  optexpand [options] [--] [--NAME SPEC]... TEMPLATE

Arguments:
  --NAME SPEC
    Declares option NAME. SPEC is a numeric range START:END or
    START:STEP:END, a set of alternatives A|B|C, or a single literal.
  TEMPLATE
    Text with ${NAME} placeholders. One record is written per combination,
    split into shell words, words and records terminated by NUL.

Example:
  optexpand --m 'gaussian|poisson' --p 0:3:9 'out_${m}_${p}.tif -p=${p}' | xargs -0 -n 2 deconvolve

Options:
  Tool options take a single dash and come before the first --NAME.
  --config, --format, --count, --log-level and --log-format are rejected
  as option names.
`)
	flagSet.PrintDefaults()
}

// splitArgs separates the tool flags from the expansion arguments. The first
// argument of the form --NAME starts the expansion arguments; tool flags are
// single-dash.
func splitArgs(args []string) ([]string, []string) {
	for i, arg := range args {
		if len(arg) > 2 && strings.HasPrefix(arg, "--") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

// parseExpansion reads `--name spec` pairs followed by the template. When a
// sweep file is in use the template may be left out, in which case every
// argument belongs to a pair.
func parseExpansion(rest []string, haveSweep bool) ([]app.OptionArg, string, bool, error) {
	var (
		template    string
		hasTemplate bool
	)
	// Checked first: a misplaced boolean flag also skews the argument count.
	for _, arg := range rest[:max(len(rest)-1, 0)] {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		field, _, _ := strings.Cut(arg[2:], "=")
		if _, reserved := toolFlags[field]; reserved {
			return nil, "", false, fmt.Errorf("%w: write -%s instead of %s", ErrMisplacedToolFlag, field, arg)
		}
	}

	switch {
	case len(rest)%2 == 1:
		template, hasTemplate = rest[len(rest)-1], true
		rest = rest[:len(rest)-1]
	case len(rest) == 0 && !haveSweep:
		return nil, "", false, app.ErrMissingTemplate
	case !haveSweep:
		return nil, "", false, ErrOddArguments
	}

	seen := make(map[string]struct{}, len(rest)/2)
	options := make([]app.OptionArg, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		m := nameRegex.FindStringSubmatch(rest[i])
		if m == nil {
			return nil, "", false, &MalformedFieldError{Field: rest[i]}
		}
		name := m[1]
		if _, dup := seen[name]; dup {
			return nil, "", false, fmt.Errorf("%w: --%s", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
		options = append(options, app.OptionArg{Name: name, Spec: rest[i+1]})
	}
	return options, template, hasTemplate, nil
}
