//go:build unit
// +build unit

package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRootCommand(t *testing.T) *cobra.Command {
	t.Helper()

	rootCmd := &cobra.Command{Use: "rsa-vault-cli", SilenceUsage: true, SilenceErrors: true}
	InitRootFlags(rootCmd)
	require.NoError(t, InitKeyGenCommands(rootCmd))
	require.NoError(t, InitStreamCommands(rootCmd))
	require.NoError(t, InitKeysCommands(rootCmd))
	return rootCmd
}

func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	rootCmd := newTestRootCommand(t)
	var stdout, stderr bytes.Buffer
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func generateTestKeys(t *testing.T, extra ...string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	pubPath := filepath.Join(dir, "alice.pub")
	privPath := filepath.Join(dir, "alice.priv")

	args := append([]string{"keygen", "-b", "256", "-i", "50", "-s", "42", "-u", "alice", "-n", pubPath, "-d", privPath}, extra...)
	_, _, err := executeCommand(t, nil, args...)
	require.NoError(t, err)
	return pubPath, privPath
}

func TestKeyGenEncryptDecrypt_Files(t *testing.T) {
	pubPath, privPath := generateTestKeys(t)

	info, err := os.Stat(privPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	pubContent, err := os.ReadFile(pubPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(pubContent), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "alice", lines[3])

	dir := t.TempDir()
	plainPath := filepath.Join(dir, "plain.txt")
	cipherPath := filepath.Join(dir, "cipher.txt")
	decryptedPath := filepath.Join(dir, "decrypted.txt")
	require.NoError(t, os.WriteFile(plainPath, []byte("hello world"), 0600))

	_, _, err = executeCommand(t, nil, "encrypt", "-i", plainPath, "-o", cipherPath, "-n", pubPath)
	require.NoError(t, err)

	_, _, err = executeCommand(t, nil, "decrypt", "-i", cipherPath, "-o", decryptedPath, "-n", privPath)
	require.NoError(t, err)

	decrypted, err := os.ReadFile(decryptedPath)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(decrypted))
}

func TestEncryptDecrypt_Streams(t *testing.T) {
	pubPath, privPath := generateTestKeys(t)

	ciphertext, _, err := executeCommand(t, strings.NewReader("streamed through stdin"), "encrypt", "-n", pubPath)
	require.NoError(t, err)
	assert.NotEmpty(t, ciphertext)

	plaintext, _, err := executeCommand(t, strings.NewReader(ciphertext), "decrypt", "-n", privPath)
	require.NoError(t, err)
	assert.Equal(t, "streamed through stdin", plaintext)
}

func TestKeyGen_Verbose(t *testing.T) {
	dir := t.TempDir()
	_, stderr, err := executeCommand(t, nil, "keygen", "-v", "-s", "42", "-u", "bob",
		"-n", filepath.Join(dir, "bob.pub"), "-d", filepath.Join(dir, "bob.priv"))
	require.NoError(t, err)

	assert.Contains(t, stderr, "user = bob\n")
	for _, name := range []string{"s", "p", "q", "n", "e", "d"} {
		assert.Contains(t, stderr, "\n"+name+" (")
	}
}

func TestEncrypt_UntrustedKey(t *testing.T) {
	pubPath, _ := generateTestKeys(t)

	content, err := os.ReadFile(pubPath)
	require.NoError(t, err)
	forged := strings.Replace(string(content), "\nalice\n", "\nmallory\n", 1)
	forgedPath := filepath.Join(t.TempDir(), "forged.pub")
	require.NoError(t, os.WriteFile(forgedPath, []byte(forged), 0600))

	stdout, _, err := executeCommand(t, strings.NewReader("secret"), "encrypt", "-n", forgedPath)
	assert.ErrorIs(t, err, keys.ErrUntrustedKey)
	assert.Empty(t, stdout)
}

func TestKeyGen_InvalidParameters(t *testing.T) {
	dir := t.TempDir()
	pubPath := filepath.Join(dir, "x.pub")
	privPath := filepath.Join(dir, "x.priv")

	tests := []struct {
		name string
		args []string
	}{
		{"tiny modulus", []string{"keygen", "-b", "8", "-u", "x", "-n", pubPath, "-d", privPath}},
		{"zero iterations", []string{"keygen", "-i", "0", "-u", "x", "-n", pubPath, "-d", privPath}},
		{"identity outside alphabet", []string{"keygen", "-u", "x.y", "-n", pubPath, "-d", privPath}},
		{"same key files", []string{"keygen", "-u", "x", "-n", pubPath, "-d", pubPath}},
		{"positional argument", []string{"keygen", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, nil, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestDecrypt_MissingKey(t *testing.T) {
	_, _, err := executeCommand(t, strings.NewReader("ff"), "decrypt", "-n", filepath.Join(t.TempDir(), "none.priv"))
	assert.Error(t, err)
}

func TestKeys_NoRegistry(t *testing.T) {
	_, _, err := executeCommand(t, nil, "keys", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no key registry configured")
}

func TestCommandLoggerSettings(t *testing.T) {
	console := config.LoggerSettings{LogLevel: config.LogLevelWarning, LogType: config.LogTypeConsole}
	file := config.LoggerSettings{LogLevel: config.LogLevelWarning, LogType: config.LogTypeFile, FilePath: "rsa-vault.log"}

	assert.Equal(t, config.LogLevelDebug, commandLoggerSettings(console, true).LogLevel)
	assert.Equal(t, config.LogLevelWarning, commandLoggerSettings(console, false).LogLevel)
	assert.Equal(t, config.LogLevelWarning, commandLoggerSettings(file, true).LogLevel)
}
