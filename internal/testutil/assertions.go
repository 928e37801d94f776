package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireRecords decodes NUL-encoded output the way `xargs -0 -n N` would,
// grouping fields by tokensPerRecord, and compares the result with want.
func RequireRecords(t *testing.T, out string, tokensPerRecord int, want [][]string) {
	t.Helper()

	var got [][]string
	if out != "" {
		require.True(t, strings.HasSuffix(out, "\x00"), "output must end with a NUL terminator")
		fields := strings.Split(strings.TrimSuffix(out, "\x00"), "\x00")
		require.Zero(t, len(fields)%tokensPerRecord,
			"%d fields cannot be grouped by %d", len(fields), tokensPerRecord)
		for i := 0; i < len(fields); i += tokensPerRecord {
			got = append(got, fields[i:i+tokensPerRecord])
		}
	}
	require.Equal(t, want, got)
}
