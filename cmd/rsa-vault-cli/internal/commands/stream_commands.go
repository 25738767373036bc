package commands

import (
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/app"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"

	"github.com/spf13/cobra"
)

// StreamCommandHandler encapsulates logic for encrypting and decrypting streams via CLI.
type StreamCommandHandler struct{}

// EncryptCmd encrypts the input stream for the owner of a public key file
func (commandHandler *StreamCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	inputFile, outputFile, err := streamPaths(cmd)
	if err != nil {
		return err
	}
	publicKeyPath, err := keyPath(cmd, "public-key", env.settings.KeyGen.PublicKeyFile)
	if err != nil {
		return err
	}

	service, err := app.NewEncryptionService(env.rsaProcessor, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create encryption service: %w", err)
	}

	in, err := openInput(cmd, inputFile)
	if err != nil {
		return err
	}
	defer closeFile(in)

	out, err := openOutput(cmd, outputFile)
	if err != nil {
		return err
	}
	defer closeFile(out)

	publicKey, err := service.Encrypt(cmd.Context(), publicKeyPath, in, out)
	if err != nil {
		return err
	}

	if env.verbose {
		w := cmd.ErrOrStderr()
		_, _ = fmt.Fprintf(w, "user = %s\n", publicKey.Identity)
		printValue(w, "s", publicKey.S)
		printValue(w, "n", publicKey.N)
		printValue(w, "e", publicKey.E)
	}
	return nil
}

// DecryptCmd decrypts the input stream with a private key file
func (commandHandler *StreamCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	inputFile, outputFile, err := streamPaths(cmd)
	if err != nil {
		return err
	}
	privateKeyPath, err := keyPath(cmd, "private-key", env.settings.KeyGen.PrivateKeyFile)
	if err != nil {
		return err
	}

	service, err := app.NewDecryptionService(env.rsaProcessor, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create decryption service: %w", err)
	}

	in, err := openInput(cmd, inputFile)
	if err != nil {
		return err
	}
	defer closeFile(in)

	out, err := openOutput(cmd, outputFile)
	if err != nil {
		return err
	}
	defer closeFile(out)

	privateKey, err := service.Decrypt(cmd.Context(), privateKeyPath, in, out)
	if err != nil {
		return err
	}

	if env.verbose {
		w := cmd.ErrOrStderr()
		printValue(w, "n", privateKey.N)
		printValue(w, "d", privateKey.D)
	}
	return nil
}

func streamPaths(cmd *cobra.Command) (string, string, error) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return "", "", fmt.Errorf("invalid input-file flag: %w", err)
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return "", "", fmt.Errorf("invalid output-file flag: %w", err)
	}
	return inputFile, outputFile, nil
}

// keyPath returns the flag value when set explicitly and the configured default otherwise.
func keyPath(cmd *cobra.Command, flag, configured string) (string, error) {
	if !cmd.Flags().Changed(flag) {
		return configured, nil
	}
	path, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", flag, err)
	}
	return path, nil
}

// InitStreamCommands registers the encrypt and decrypt commands with the root command.
func InitStreamCommands(rootCmd *cobra.Command) error {
	handler := &StreamCommandHandler{}

	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt data with an RSA public key",
		Long:  "Encrypt data with an RSA public key. Encrypted data is decrypted by the decrypt command.",
		Args:  cobra.NoArgs,
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("input-file", "i", "", "Input file of data to encrypt (default: stdin)")
	encryptCmd.Flags().StringP("output-file", "o", "", "Output file for encrypted data (default: stdout)")
	encryptCmd.Flags().StringP("public-key", "n", config.DefaultPublicKeyFile, "Public key file")
	rootCmd.AddCommand(encryptCmd)

	decryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt data with an RSA private key",
		Long:  "Decrypt data produced by the encrypt command with the matching RSA private key.",
		Args:  cobra.NoArgs,
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().StringP("input-file", "i", "", "Input file of data to decrypt (default: stdin)")
	decryptCmd.Flags().StringP("output-file", "o", "", "Output file for decrypted data (default: stdout)")
	decryptCmd.Flags().StringP("private-key", "n", config.DefaultPrivateKeyFile, "Private key file")
	rootCmd.AddCommand(decryptCmd)

	return nil
}
