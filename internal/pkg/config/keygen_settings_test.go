//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyGenSettingsValidation(t *testing.T) {
	valid := func() *KeyGenSettings {
		return &KeyGenSettings{
			Bits:           DefaultModulusBits,
			Iterations:     DefaultIterations,
			PublicKeyFile:  DefaultPublicKeyFile,
			PrivateKeyFile: DefaultPrivateKeyFile,
		}
	}

	tests := []struct {
		name          string
		mutate        func(s *KeyGenSettings)
		expectedError bool
	}{
		{"defaults", func(_ *KeyGenSettings) {}, false},
		{"bounded search", func(s *KeyGenSettings) { s.MaxAttempts = 10000 }, false},
		{"modulus too small", func(s *KeyGenSettings) { s.Bits = 16 }, true},
		{"modulus too large", func(s *KeyGenSettings) { s.Bits = 32768 }, true},
		{"no iterations", func(s *KeyGenSettings) { s.Iterations = 0 }, true},
		{"negative attempts", func(s *KeyGenSettings) { s.MaxAttempts = -1 }, true},
		{"missing public key file", func(s *KeyGenSettings) { s.PublicKeyFile = "" }, true},
		{"same file for both keys", func(s *KeyGenSettings) { s.PrivateKeyFile = s.PublicKeyFile }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := valid()
			tt.mutate(settings)

			err := settings.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
