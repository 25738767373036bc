package cryptography

import (
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger      logger.Logger
	maxAttempts int
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor.
// maxAttempts bounds the prime and exponent searches; zero means unbounded.
func NewRSAProcessor(logger logger.Logger, maxAttempts int) (cryptoalg.RSAProcessor, error) {
	if maxAttempts < 0 {
		return nil, fmt.Errorf("max attempts must not be negative, got %d", maxAttempts)
	}
	return &rsaProcessor{
		logger:      logger,
		maxAttempts: maxAttempts,
	}, nil
}

// GenerateKeys generates an RSA key pair with a modulus of at least bits bits.
func (r *rsaProcessor) GenerateKeys(rng randstate.Source, bits, iterations uint) (*keys.KeyPair, error) {
	keyPair, err := generateKeyPair(rng, bits, iterations, r.maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}
	r.logger.Debug("p has ", keyPair.P.BitLen(), " bits, q has ", keyPair.Q.BitLen(), " bits, e = ", keyPair.E)
	r.logger.Info("Generated RSA key pair with ", keyPair.N.BitLen(), "-bit modulus")
	return keyPair, nil
}

// EncryptStream encrypts r into w with the public key.
func (r *rsaProcessor) EncryptStream(in io.Reader, out io.Writer, publicKey *keys.PublicKey) error {
	if publicKey == nil || publicKey.N == nil || publicKey.E == nil {
		return fmt.Errorf("public key cannot be nil")
	}
	r.logger.Debug("Encrypting under ", publicKey.N.BitLen(), "-bit modulus")
	if err := EncryptStream(in, out, publicKey.N, publicKey.E); err != nil {
		return fmt.Errorf("failed to encrypt data: %w", err)
	}
	r.logger.Info("RSA encryption succeeded")
	return nil
}

// DecryptStream decrypts r into w with the private key.
func (r *rsaProcessor) DecryptStream(in io.Reader, out io.Writer, privateKey *keys.PrivateKey) error {
	if privateKey == nil || privateKey.N == nil || privateKey.D == nil {
		return fmt.Errorf("private key cannot be nil")
	}
	r.logger.Debug("Decrypting under ", privateKey.N.BitLen(), "-bit modulus")
	if err := DecryptStream(in, out, privateKey.N, privateKey.D); err != nil {
		return fmt.Errorf("failed to decrypt data: %w", err)
	}
	r.logger.Info("RSA decryption succeeded")
	return nil
}

// SignIdentity signs identity with the private key.
func (r *rsaProcessor) SignIdentity(identity string, privateKey *keys.PrivateKey) (*big.Int, error) {
	if privateKey == nil || privateKey.N == nil || privateKey.D == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}
	signature, err := SignIdentity(identity, privateKey.D, privateKey.N)
	if err != nil {
		return nil, fmt.Errorf("failed to sign identity: %w", err)
	}
	r.logger.Info("Signed identity ", identity)
	return signature, nil
}

// VerifyIdentity verifies the identity signature carried by the public key.
func (r *rsaProcessor) VerifyIdentity(publicKey *keys.PublicKey) (bool, error) {
	if publicKey == nil {
		return false, fmt.Errorf("public key cannot be nil")
	}
	if err := publicKey.Validate(); err != nil {
		return false, fmt.Errorf("invalid public key: %w", err)
	}

	r.logger.Debug("Verifying ", publicKey.S.BitLen(), "-bit signature of ", publicKey.Identity)
	valid, err := VerifyIdentity(publicKey.Identity, publicKey.S, publicKey.E, publicKey.N)
	if err != nil {
		return false, fmt.Errorf("failed to verify identity: %w", err)
	}
	if !valid {
		r.logger.Warn("Identity signature for ", publicKey.Identity, " is invalid")
		return false, nil
	}
	r.logger.Info("Identity signature for ", publicKey.Identity, " verified successfully")
	return true, nil
}

// SavePrivateKeyToFile saves the private key to filename with owner-only permissions.
func (r *rsaProcessor) SavePrivateKeyToFile(privateKey *keys.PrivateKey, filename string) error {
	file, err := os.OpenFile(filepath.Clean(filename), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create private key file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	// an existing file keeps its old mode on open
	if err := file.Chmod(0600); err != nil {
		return fmt.Errorf("failed to restrict private key file permissions: %w", err)
	}

	if err := WritePrivateKey(file, privateKey); err != nil {
		return fmt.Errorf("failed to encode private key: %w", err)
	}

	r.logger.Info("Saved RSA private key ", filename)
	return nil
}

// SavePublicKeyToFile saves the public key to filename.
func (r *rsaProcessor) SavePublicKeyToFile(publicKey *keys.PublicKey, filename string) error {
	file, err := os.OpenFile(filepath.Clean(filename), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create public key file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	if err := WritePublicKey(file, publicKey); err != nil {
		return fmt.Errorf("failed to encode public key: %w", err)
	}

	r.logger.Info("Saved RSA public key ", filename)
	return nil
}

// ReadPrivateKey reads a private key from privateKeyPath.
func (r *rsaProcessor) ReadPrivateKey(privateKeyPath string) (*keys.PrivateKey, error) {
	file, err := os.Open(filepath.Clean(privateKeyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	privateKey, err := ReadPrivateKey(file)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key %s: %w", privateKeyPath, err)
	}
	return privateKey, nil
}

// ReadPublicKey reads a public key from publicKeyPath.
func (r *rsaProcessor) ReadPublicKey(publicKeyPath string) (*keys.PublicKey, error) {
	file, err := os.Open(filepath.Clean(publicKeyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	publicKey, err := ReadPublicKey(file)
	if err != nil {
		return nil, fmt.Errorf("unable to parse public key %s: %w", publicKeyPath, err)
	}
	return publicKey, nil
}
