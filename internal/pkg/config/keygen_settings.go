package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Defaults of the key generation flow
const (
	DefaultModulusBits    = 256
	DefaultIterations     = 50
	DefaultPublicKeyFile  = "rsa.pub"
	DefaultPrivateKeyFile = "rsa.priv"
)

// KeyGenSettings holds the parameters of key generation and the default key file locations
type KeyGenSettings struct {
	Bits           uint   `mapstructure:"bits" validate:"required,gte=32,lte=16384"`
	Iterations     uint   `mapstructure:"iterations" validate:"required,gte=1,lte=500"`
	MaxAttempts    int    `mapstructure:"max_attempts" validate:"gte=0"`
	PublicKeyFile  string `mapstructure:"public_key_file" validate:"required"`
	PrivateKeyFile string `mapstructure:"private_key_file" validate:"required,nefield=PublicKeyFile"`
}

// Validate checks that all fields in KeyGenSettings are valid
func (s *KeyGenSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeyGenSettings: %w", err)
	}
	return nil
}
