package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadCLISettings
const EnvPrefix = "RSA_VAULT"

// CLISettings aggregates all settings of the command-line tool
type CLISettings struct {
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	KeyGen   KeyGenSettings   `mapstructure:"keygen"`
}

// Validate checks every settings section
func (s *CLISettings) Validate() error {
	if err := s.Logger.Validate(); err != nil {
		return err
	}
	if err := s.Database.Validate(); err != nil {
		return err
	}
	return s.KeyGen.Validate()
}

// LoadCLISettings reads settings from the YAML file at path, when given, and from
// RSA_VAULT_* environment variables (e.g. RSA_VAULT_KEYGEN_BITS), on top of defaults.
func LoadCLISettings(path string) (*CLISettings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	settings := &CLISettings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", LogLevelWarning)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)

	v.SetDefault("database.type", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.name", "")

	v.SetDefault("keygen.bits", DefaultModulusBits)
	v.SetDefault("keygen.iterations", DefaultIterations)
	v.SetDefault("keygen.max_attempts", 0)
	v.SetDefault("keygen.public_key_file", DefaultPublicKeyFile)
	v.SetDefault("keygen.private_key_file", DefaultPrivateKeyFile)
}
