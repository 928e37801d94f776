// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles creates a temporary directory, writes every file into it and
// returns the directory. Names are relative paths (e.g. "sweeps/a.hcl"), so
// subdirectories are created as needed.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return root
}

// WriteFile writes a single file into a fresh temporary directory and
// returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	return filepath.Join(WriteFiles(t, map[string]string{name: content}), name)
}
