package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFile create a test files
func CreateTestFile(fileName string, content []byte) error {
	err := os.WriteFile(fileName, content, 0600)
	if err != nil {
		return fmt.Errorf("failed to create test file: %w", err)
	}
	return nil
}

// TempFile writes content to a file named name inside a per-test directory
// and returns its path. The directory is removed when the test ends.
func TempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, CreateTestFile(path, content))
	return path
}

// KeyPaths returns public and private key file paths inside a per-test directory.
func KeyPaths(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	return filepath.Join(dir, "rsa.pub"), filepath.Join(dir, "rsa.priv")
}
