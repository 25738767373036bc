// Package main is the entry point for the rsa-vault-cli application.
// It initializes the root command and registers the key generation, encryption,
// decryption and key registry sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/rsa-vault/cmd/rsa-vault-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "rsa-vault-cli",
		Short: "RSA key generation and stream encryption CLI tool",
		Long: `rsa-vault-cli generates RSA key pairs whose public key carries a signature
of the owner's identity, and encrypts or decrypts arbitrary byte streams with them.

Ciphertext is written as one hexadecimal integer per line. Public keys whose identity
signature does not verify are refused on encryption.

Settings are read from an optional YAML file (--config) and RSA_VAULT_* environment
variables. Configure database.type and database.dsn to record generated keys in the
key registry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	commands.InitRootFlags(rootCmd)

	if err := commands.InitKeyGenCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize keygen commands: %w", err)
	}

	if err := commands.InitStreamCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize encrypt/decrypt commands: %w", err)
	}

	if err := commands.InitKeysCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key registry commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
