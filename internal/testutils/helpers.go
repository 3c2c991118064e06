package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteShowFile writes content to name inside a fresh temporary directory
// and returns the file path. It fails the test immediately on error.
func WriteShowFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write show file")
	return path
}
