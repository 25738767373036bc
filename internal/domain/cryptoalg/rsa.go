package cryptoalg

import (
	"io"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
)

// RSAProcessor handles RSA key generation, stream encryption and identity signatures.
// Blocks are framed with a single sentinel byte; no other padding is applied.
type RSAProcessor interface {
	// GenerateKeys generates a key pair whose modulus has at least bits bits.
	// iterations is the number of Miller-Rabin rounds applied to each prime candidate.
	GenerateKeys(rng randstate.Source, bits, iterations uint) (*keys.KeyPair, error)

	// EncryptStream encrypts everything read from r with the public key and writes
	// one hexadecimal ciphertext per line to w.
	EncryptStream(r io.Reader, w io.Writer, publicKey *keys.PublicKey) error

	// DecryptStream decrypts the hexadecimal ciphertexts read from r with the private key
	// and writes the recovered bytes to w.
	DecryptStream(r io.Reader, w io.Writer, privateKey *keys.PrivateKey) error

	// SignIdentity signs the base-62 encoding of identity with the private key.
	SignIdentity(identity string, privateKey *keys.PrivateKey) (*big.Int, error)

	// VerifyIdentity checks the signature embedded in the public key against its identity.
	// Returns false with a nil error if the signature does not match.
	VerifyIdentity(publicKey *keys.PublicKey) (bool, error)

	// SavePrivateKeyToFile saves the private key to a file readable only by its owner (0600).
	SavePrivateKeyToFile(privateKey *keys.PrivateKey, filename string) error

	// SavePublicKeyToFile saves the public key and its identity signature to a file.
	SavePublicKeyToFile(publicKey *keys.PublicKey, filename string) error

	// ReadPrivateKey reads a private key file.
	ReadPrivateKey(privateKeyPath string) (*keys.PrivateKey, error)

	// ReadPublicKey reads a public key file.
	ReadPublicKey(publicKeyPath string) (*keys.PublicKey, error)
}
