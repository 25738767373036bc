package commands

import (
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	configFlag  = "config"
	verboseFlag = "verbose"
)

// InitRootFlags registers the flags shared by every sub-command.
func InitRootFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String(configFlag, "", "Path to a YAML settings file")
	rootCmd.PersistentFlags().BoolP(verboseFlag, "v", false, "Display verbose program output on stderr")
}

// commandEnv bundles the dependencies a command needs for one invocation
type commandEnv struct {
	settings     *config.CLISettings
	logger       logger.Logger
	rsaProcessor cryptoalg.RSAProcessor
	verbose      bool
	db           *gorm.DB
}

func newCommandEnv(cmd *cobra.Command) (*commandEnv, error) {
	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool(verboseFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid verbose flag: %w", err)
	}

	settings, err := config.LoadCLISettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	loggerSettings := commandLoggerSettings(settings.Logger, verbose)
	loggerInstance, err := logger.NewLogger(&loggerSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance, settings.KeyGen.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &commandEnv{
		settings:     settings,
		logger:       loggerInstance,
		rsaProcessor: rsaProcessor,
		verbose:      verbose,
	}, nil
}

// commandLoggerSettings lowers a console logger to debug level when -v is given.
// File loggers keep their configured level.
func commandLoggerSettings(settings config.LoggerSettings, verbose bool) config.LoggerSettings {
	if verbose && settings.LogType == config.LogTypeConsole {
		return settings.WithLevel(config.LogLevelDebug)
	}
	return settings
}

// keyMetaRepository opens the key registry when one is configured and returns nil otherwise.
func (env *commandEnv) keyMetaRepository() (keys.KeyMetaRepository, error) {
	if !env.settings.Database.Enabled() {
		return nil, nil
	}

	db, err := persistence.OpenRegistry(env.settings.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open key registry: %w", err)
	}
	env.db = db

	return persistence.NewGormKeyMetaRepository(db, env.logger)
}

func (env *commandEnv) close() {
	if env.db == nil {
		return
	}
	if err := persistence.CloseDB(env.db); err != nil {
		env.logger.Warn("failed to close key registry: ", err)
	}
	env.db = nil
}

// openInput opens path for reading, or falls back to the command input stream when path is empty.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return file, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// openOutput creates path for writing, or falls back to the command output stream when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}

func closeFile(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("warning: failed to close file: %v\n", err)
	}
}

// printValue writes a verbose diagnostic line in the form "n (257 bits) = 1234".
func printValue(w io.Writer, name string, v *big.Int) {
	_, _ = fmt.Fprintf(w, "%s (%d bits) = %s\n", name, v.BitLen(), v.String())
}
