package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/app"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"

	"github.com/spf13/cobra"
)

// KeyGenCommandHandler encapsulates logic for generating RSA key pairs via CLI.
type KeyGenCommandHandler struct {
	now func() time.Time
}

// NewKeyGenCommandHandler initializes a new KeyGenCommandHandler.
func NewKeyGenCommandHandler() *KeyGenCommandHandler {
	return &KeyGenCommandHandler{now: time.Now}
}

// GenerateKeysCmd generates a signed key pair and writes the public and private key files
func (commandHandler *KeyGenCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	req, err := commandHandler.generateRequest(cmd, env)
	if err != nil {
		return err
	}

	repo, err := env.keyMetaRepository()
	if err != nil {
		return err
	}

	service, err := app.NewKeyGenerationService(env.rsaProcessor, repo, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create key generation service: %w", err)
	}

	result, err := service.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if env.verbose {
		w := cmd.ErrOrStderr()
		_, _ = fmt.Fprintf(w, "user = %s\n", req.Identity)
		printValue(w, "s", result.PublicKey.S)
		printValue(w, "p", result.KeyPair.P)
		printValue(w, "q", result.KeyPair.Q)
		printValue(w, "n", result.KeyPair.N)
		printValue(w, "e", result.KeyPair.E)
		printValue(w, "d", result.KeyPair.D)
	}

	env.logger.Info("Public key path ", req.PublicKeyPath, ", private key path ", req.PrivateKeyPath)
	return nil
}

// generateRequest merges explicit flags over the configured key generation settings.
func (commandHandler *KeyGenCommandHandler) generateRequest(cmd *cobra.Command, env *commandEnv) (*keys.GenerateRequest, error) {
	flags := cmd.Flags()
	defaults := env.settings.KeyGen

	req := &keys.GenerateRequest{
		Bits:           defaults.Bits,
		Iterations:     defaults.Iterations,
		Seed:           uint64(commandHandler.now().Unix()),
		Identity:       os.Getenv("USER"),
		PublicKeyPath:  defaults.PublicKeyFile,
		PrivateKeyPath: defaults.PrivateKeyFile,
	}

	var err error
	if flags.Changed("bits") {
		if req.Bits, err = flags.GetUint("bits"); err != nil {
			return nil, fmt.Errorf("invalid bits flag: %w", err)
		}
	}
	if flags.Changed("iterations") {
		if req.Iterations, err = flags.GetUint("iterations"); err != nil {
			return nil, fmt.Errorf("invalid iterations flag: %w", err)
		}
	}
	if flags.Changed("seed") {
		if req.Seed, err = flags.GetUint64("seed"); err != nil {
			return nil, fmt.Errorf("invalid seed flag: %w", err)
		}
	}
	if flags.Changed("identity") {
		if req.Identity, err = flags.GetString("identity"); err != nil {
			return nil, fmt.Errorf("invalid identity flag: %w", err)
		}
	}
	if flags.Changed("public-key") {
		if req.PublicKeyPath, err = flags.GetString("public-key"); err != nil {
			return nil, fmt.Errorf("invalid public-key flag: %w", err)
		}
	}
	if flags.Changed("private-key") {
		if req.PrivateKeyPath, err = flags.GetString("private-key"); err != nil {
			return nil, fmt.Errorf("invalid private-key flag: %w", err)
		}
	}

	if req.Identity == "" {
		return nil, fmt.Errorf("no identity given: set --identity or the USER environment variable")
	}
	return req, nil
}

// InitKeyGenCommands registers the keygen command with the root command.
func InitKeyGenCommands(rootCmd *cobra.Command) error {
	handler := NewKeyGenCommandHandler()

	generateKeysCmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA public/private key pair",
		Long: `Generate an RSA key pair. The public key file holds n, e, the signature s of the
identity and the identity itself. The private key file holds n and d and is readable
by its owner only.`,
		Args: cobra.NoArgs,
		RunE: handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().UintP("bits", "b", config.DefaultModulusBits, "Minimum bits needed for public key n")
	generateKeysCmd.Flags().UintP("iterations", "i", config.DefaultIterations, "Miller-Rabin iterations for testing primes")
	generateKeysCmd.Flags().Uint64P("seed", "s", 0, "Random seed for testing (default: seconds since the epoch)")
	generateKeysCmd.Flags().StringP("public-key", "n", config.DefaultPublicKeyFile, "Public key file")
	generateKeysCmd.Flags().StringP("private-key", "d", config.DefaultPrivateKeyFile, "Private key file")
	generateKeysCmd.Flags().StringP("identity", "u", "", "Identity signed into the public key (default: $USER)")
	rootCmd.AddCommand(generateKeysCmd)

	return nil
}
