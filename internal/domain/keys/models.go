package keys

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// ErrMalformedKey marks key material that is missing a field or holds data
// that is not a hexadecimal integer.
var ErrMalformedKey = errors.New("malformed key material")

// ErrUntrustedKey marks a public key whose identity signature does not verify.
var ErrUntrustedKey = errors.New("untrusted key: identity signature verification failed")

// KeyPair holds everything produced by key generation.
// P and Q exist only for the lifetime of the generation flow and are never persisted.
type KeyPair struct {
	P *big.Int
	Q *big.Int
	N *big.Int
	E *big.Int
	D *big.Int
}

// Public returns the persistable public half of the pair without a signature.
func (kp *KeyPair) Public(identity string) *PublicKey {
	return &PublicKey{
		N:        new(big.Int).Set(kp.N),
		E:        new(big.Int).Set(kp.E),
		Identity: identity,
	}
}

// Private returns the persistable private half of the pair.
func (kp *KeyPair) Private() *PrivateKey {
	return &PrivateKey{
		N: new(big.Int).Set(kp.N),
		D: new(big.Int).Set(kp.D),
	}
}

// PublicKey is the record written to a public key file. S is the signature
// over the numeric encoding of Identity made with the matching private key.
type PublicKey struct {
	N        *big.Int `validate:"required"`
	E        *big.Int `validate:"required"`
	S        *big.Int `validate:"required"`
	Identity string   `validate:"required,base62"`
}

// Validate checks that every field of the public key is set and the identity is encodable
func (k *PublicKey) Validate() error {
	return validateStruct(k)
}

// PrivateKey is the record written to a private key file.
type PrivateKey struct {
	N *big.Int `validate:"required"`
	D *big.Int `validate:"required"`
}

// Validate checks that every field of the private key is set
func (k *PrivateKey) Validate() error {
	return validateStruct(k)
}

func validateStruct(s interface{}) error {
	err := validators.New().Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
