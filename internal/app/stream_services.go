package app

import (
	"context"
	"fmt"
	"io"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

// encryptionService implements the EncryptionService interface
type encryptionService struct {
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewEncryptionService creates a new encryptionService instance
func NewEncryptionService(rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (keys.EncryptionService, error) {
	if rsaProcessor == nil {
		return nil, fmt.Errorf("rsa processor cannot be nil")
	}
	return &encryptionService{
		rsaProcessor: rsaProcessor,
		logger:       logger,
	}, nil
}

// Encrypt verifies the identity signature of the public key file and encrypts r into w.
func (s *encryptionService) Encrypt(ctx context.Context, publicKeyPath string, r io.Reader, w io.Writer) (*keys.PublicKey, error) {
	publicKey, err := s.rsaProcessor.ReadPublicKey(publicKeyPath)
	if err != nil {
		return nil, err
	}

	trusted, err := s.rsaProcessor.VerifyIdentity(publicKey)
	if err != nil {
		return nil, err
	}
	if !trusted {
		return nil, fmt.Errorf("%w: %s claims identity %s", keys.ErrUntrustedKey, publicKeyPath, publicKey.Identity)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("encryption aborted: %w", err)
	}

	if err := s.rsaProcessor.EncryptStream(r, w, publicKey); err != nil {
		return nil, err
	}
	return publicKey, nil
}

// decryptionService implements the DecryptionService interface
type decryptionService struct {
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewDecryptionService creates a new decryptionService instance
func NewDecryptionService(rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (keys.DecryptionService, error) {
	if rsaProcessor == nil {
		return nil, fmt.Errorf("rsa processor cannot be nil")
	}
	return &decryptionService{
		rsaProcessor: rsaProcessor,
		logger:       logger,
	}, nil
}

// Decrypt decrypts r into w with the private key file.
func (s *decryptionService) Decrypt(ctx context.Context, privateKeyPath string, r io.Reader, w io.Writer) (*keys.PrivateKey, error) {
	privateKey, err := s.rsaProcessor.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decryption aborted: %w", err)
	}

	if err := s.rsaProcessor.DecryptStream(r, w, privateKey); err != nil {
		return nil, err
	}
	return privateKey, nil
}
