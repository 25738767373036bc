package cryptography

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"
)

var (
	// ErrInvalidIdentity signals an identity string that is empty or not made of base-62 digits.
	ErrInvalidIdentity = errors.New("identity must be a non-empty base-62 string (0-9, A-Z, a-z)")

	// ErrIdentityTooLarge signals an identity whose numeric encoding is not smaller than the modulus.
	ErrIdentityTooLarge = errors.New("identity encoding does not fit below the modulus")
)

var base = big.NewInt(int64(len(validators.Base62Alphabet)))

// EncodeIdentity maps identity to an integer by reading it as a base-62 numeral.
func EncodeIdentity(identity string) (*big.Int, error) {
	if identity == "" {
		return nil, ErrInvalidIdentity
	}

	m := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(identity); i++ {
		v := strings.IndexByte(validators.Base62Alphabet, identity[i])
		if v < 0 {
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d", ErrInvalidIdentity, identity[i], i)
		}
		m.Mul(m, base)
		m.Add(m, digit.SetInt64(int64(v)))
	}
	return m, nil
}

// SignIdentity signs the numeric encoding of identity with the private exponent d.
func SignIdentity(identity string, d, n *big.Int) (*big.Int, error) {
	if n.Cmp(bigOne) <= 0 {
		return nil, ErrModulusTooSmall
	}
	m, err := EncodeIdentity(identity)
	if err != nil {
		return nil, err
	}
	if m.Cmp(n) >= 0 {
		return nil, ErrIdentityTooLarge
	}
	return Sign(m, d, n), nil
}

// VerifyIdentity reports whether s is a valid signature of identity under (e, n).
// A false result with a nil error means the key is untrusted.
func VerifyIdentity(identity string, s, e, n *big.Int) (bool, error) {
	if n.Cmp(bigOne) <= 0 {
		return false, ErrModulusTooSmall
	}
	m, err := EncodeIdentity(identity)
	if err != nil {
		return false, err
	}
	return Verify(m, s, e, n), nil
}
