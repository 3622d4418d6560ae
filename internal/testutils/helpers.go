package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/mold/pkg/schema"
)

// WriteFile creates name with content in a temporary directory and returns
// its absolute path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}

// RequireMessages asserts err is a validation failure and returns its
// messages keyed by dotted path.
func RequireMessages(t *testing.T, err error) map[string][]string {
	t.Helper()

	require.Error(t, err)
	ve, ok := schema.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %T: %v", err, err)
	return ve.Flatten()
}
