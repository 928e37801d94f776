package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/micron-ops/optexpand/internal/app"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Options and template",
			args: []string{"--m", "gaussian|poisson", "--p", "0:3:9", "out_${m}_${p}.tif -p=${p}"},
			expectedConfig: &app.Config{
				Options: []app.OptionArg{
					{Name: "m", Spec: "gaussian|poisson"},
					{Name: "p", Spec: "0:3:9"},
				},
				Template:    "out_${m}_${p}.tif -p=${p}",
				HasTemplate: true,
				Format:      "null",
				LogFormat:   "text",
				LogLevel:    "warn",
			},
		},
		{
			name: "Template only",
			args: []string{"echo hi"},
			expectedConfig: &app.Config{
				Options:     []app.OptionArg{},
				Template:    "echo hi",
				HasTemplate: true,
				Format:      "null",
				LogFormat:   "text",
				LogLevel:    "warn",
			},
		},
		{
			name: "Tool flags before options",
			args: []string{"-format", "lines", "-count", "-log-level=DEBUG", "-log-format", "json", "--a", "1", "${a}"},
			expectedConfig: &app.Config{
				Options:     []app.OptionArg{{Name: "a", Spec: "1"}},
				Template:    "${a}",
				HasTemplate: true,
				Format:      "lines",
				CountOnly:   true,
				LogFormat:   "json",
				LogLevel:    "debug",
			},
		},
		{
			name: "Explicit terminator allows a dash template",
			args: []string{"-format=lines", "--", "-v"},
			expectedConfig: &app.Config{
				Options:     []app.OptionArg{},
				Template:    "-v",
				HasTemplate: true,
				Format:      "lines",
				LogFormat:   "text",
				LogLevel:    "warn",
			},
		},
		{
			name: "Template may start with double dash after options",
			args: []string{"--a", "1", "--out=${a}"},
			expectedConfig: &app.Config{
				Options:     []app.OptionArg{{Name: "a", Spec: "1"}},
				Template:    "--out=${a}",
				HasTemplate: true,
				Format:      "null",
				LogFormat:   "text",
				LogLevel:    "warn",
			},
		},
		{
			name: "Sweep file supplies the template",
			args: []string{"-config", "sweep.hcl", "--a", "1|2"},
			expectedConfig: &app.Config{
				Options:   []app.OptionArg{{Name: "a", Spec: "1|2"}},
				SweepPath: "sweep.hcl",
				Format:    "null",
				LogFormat: "text",
				LogLevel:  "warn",
			},
		},
		{
			name: "Sweep file with template override",
			args: []string{"-config", "sweeps/", "run ${a}"},
			expectedConfig: &app.Config{
				Options:     []app.OptionArg{},
				Template:    "run ${a}",
				HasTemplate: true,
				SweepPath:   "sweeps/",
				Format:      "null",
				LogFormat:   "text",
				LogLevel:    "warn",
			},
		},
		{
			name:       "Help flag",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
				require.Contains(t, output, "-config")
			},
		},
		{
			name:      "Unknown tool flag",
			args:      []string{"-bogus", "x"},
			expectErr: true,
		},
		{
			name:      "Invalid format",
			args:      []string{"-format", "csv", "x"},
			expectErr: true,
		},
		{
			name:      "Invalid log level",
			args:      []string{"-log-level", "loud", "x"},
			expectErr: true,
		},
		{
			name:      "Invalid log format",
			args:      []string{"-log-format", "xml", "x"},
			expectErr: true,
		},
		{
			name:      "No arguments",
			args:      nil,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			config, shouldExit, err := Parse(tc.args, &out, &errOut)

			require.Equal(t, tc.expectExit, shouldExit)
			if tc.expectErr {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				require.Equal(t, 2, exitErr.Code)
				require.Zero(t, out.Len(), "usage errors must not reach the record stream")
				return
			}
			require.NoError(t, err)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, config); diff != "" {
					t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

func TestParse_ExpansionErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		args   []string
		target error
		check  func(t *testing.T, err error)
	}{
		{
			name:   "odd number of pair arguments",
			args:   []string{"--a", "1", "--b", "${a}"},
			target: ErrOddArguments,
		},
		{
			name:   "duplicate option",
			args:   []string{"--a", "1", "--a", "2", "${a}"},
			target: ErrDuplicateName,
		},
		{
			name:   "missing template",
			args:   []string{},
			target: app.ErrMissingTemplate,
		},
		{
			name: "name without prefix",
			args: []string{"--a", "1", "b", "2", "${a}"},
			check: func(t *testing.T, err error) {
				var malformed *MalformedFieldError
				require.True(t, errors.As(err, &malformed))
				require.Equal(t, "b", malformed.Field)
				require.Contains(t, err.Error(), `malformed field "b"`)
			},
		},
		{
			name:   "double dash tool flag with value",
			args:   []string{"--config", "sweep.hcl", "${m}"},
			target: ErrMisplacedToolFlag,
			check: func(t *testing.T, err error) {
				require.Contains(t, err.Error(), "write -config instead of --config")
			},
		},
		{
			name:   "double dash boolean tool flag",
			args:   []string{"--count", "--m", "a", "${m}"},
			target: ErrMisplacedToolFlag,
		},
		{
			name:   "double dash tool flag with equals",
			args:   []string{"--m", "a", "--log-level=debug", "x", "${m}"},
			target: ErrMisplacedToolFlag,
		},
		{
			name: "name that is not a word",
			args: []string{"--a-b", "1", "${a}"},
			check: func(t *testing.T, err error) {
				var malformed *MalformedFieldError
				require.True(t, errors.As(err, &malformed))
				require.Equal(t, "--a-b", malformed.Field)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(tc.args, &bytes.Buffer{}, &bytes.Buffer{})
			require.Error(t, err)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			require.Equal(t, 2, exitErr.Code)

			if tc.target != nil {
				require.ErrorIs(t, err, tc.target)
			}
			if tc.check != nil {
				tc.check(t, err)
			}
		})
	}
}

func TestParse_FlagErrorGoesToErrorWriter(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	_, shouldExit, err := Parse([]string{"-bogus", "--m", "a", "${m}"}, &out, &errOut)

	require.False(t, shouldExit)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.True(t, exitErr.Reported)
	require.Zero(t, out.Len())
	require.Contains(t, errOut.String(), "flag provided but not defined: -bogus")
	require.NotContains(t, errOut.String(), "Usage:")
}

func TestParse_HelpGoesToOutput(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	_, shouldExit, err := Parse([]string{"-help"}, &out, &errOut)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "-log-level")
	require.Zero(t, errOut.Len())
}
