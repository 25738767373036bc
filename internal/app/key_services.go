package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"path/filepath"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"

	"github.com/google/uuid"
)

// keyGenerationService implements the KeyGenerationService interface
type keyGenerationService struct {
	rsaProcessor cryptoalg.RSAProcessor
	keyMetaRepo  keys.KeyMetaRepository
	logger       logger.Logger
}

// NewKeyGenerationService creates a new keyGenerationService instance.
// keyMetaRepo may be nil, in which case no metadata is recorded.
func NewKeyGenerationService(rsaProcessor cryptoalg.RSAProcessor, keyMetaRepo keys.KeyMetaRepository, logger logger.Logger) (keys.KeyGenerationService, error) {
	if rsaProcessor == nil {
		return nil, fmt.Errorf("rsa processor cannot be nil")
	}
	return &keyGenerationService{
		rsaProcessor: rsaProcessor,
		keyMetaRepo:  keyMetaRepo,
		logger:       logger,
	}, nil
}

// Generate creates a signed key pair, writes both key files and records their metadata.
func (s *keyGenerationService) Generate(ctx context.Context, req *keys.GenerateRequest) (*keys.GenerateResult, error) {
	if req == nil {
		return nil, fmt.Errorf("generate request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate request: %w", err)
	}

	rng := randstate.New(req.Seed)
	defer func() {
		if err := rng.Close(); err != nil {
			s.logger.Warn("failed to release random state: ", err)
		}
	}()

	keyPair, err := s.rsaProcessor.GenerateKeys(rng, req.Bits, req.Iterations)
	if err != nil {
		return nil, err
	}

	privateKey := keyPair.Private()
	publicKey := keyPair.Public(req.Identity)
	publicKey.S, err = s.rsaProcessor.SignIdentity(req.Identity, privateKey)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("key generation aborted: %w", err)
	}

	if err := s.rsaProcessor.SavePublicKeyToFile(publicKey, req.PublicKeyPath); err != nil {
		return nil, err
	}
	if err := s.rsaProcessor.SavePrivateKeyToFile(privateKey, req.PrivateKeyPath); err != nil {
		return nil, err
	}

	keyMetas, err := newKeyMetas(req, keyPair.N)
	if err != nil {
		return nil, err
	}

	// key files are written first; the registry records both or neither
	if s.keyMetaRepo != nil {
		if err := s.keyMetaRepo.CreateBatch(ctx, keyMetas); err != nil {
			return nil, fmt.Errorf("failed to record key metadata: %w", err)
		}
	}

	s.logger.Info("Generated key pair ", keyMetas[0].KeyPairID, " for identity ", req.Identity)
	return &keys.GenerateResult{
		KeyPair:   keyPair,
		PublicKey: publicKey,
		KeyMetas:  keyMetas,
	}, nil
}

// Fingerprint returns the SHA-256 digest of the hexadecimal modulus.
func Fingerprint(n *big.Int) string {
	sum := sha256.Sum256([]byte(n.Text(16)))
	return hex.EncodeToString(sum[:])
}

func newKeyMetas(req *keys.GenerateRequest, n *big.Int) ([]*keys.KeyMeta, error) {
	keyPairID := uuid.New().String()
	fingerprint := Fingerprint(n)
	created := time.Now().UTC()

	var keyMetas []*keys.KeyMeta
	for _, file := range []struct {
		keyType string
		path    string
	}{
		{keys.KeyTypePublic, req.PublicKeyPath},
		{keys.KeyTypePrivate, req.PrivateKeyPath},
	} {
		path, err := filepath.Abs(file.path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve key path %s: %w", file.path, err)
		}
		keyMetas = append(keyMetas, &keys.KeyMeta{
			ID:              uuid.New().String(),
			KeyPairID:       keyPairID,
			Type:            file.keyType,
			Identity:        req.Identity,
			ModulusBits:     uint32(n.BitLen()),
			Iterations:      uint32(req.Iterations),
			Path:            path,
			Fingerprint:     fingerprint,
			DateTimeCreated: created,
		})
	}
	return keyMetas, nil
}

// keyMetadataService implements the KeyMetadataService interface
type keyMetadataService struct {
	keyMetaRepo keys.KeyMetaRepository
	logger      logger.Logger
}

// NewKeyMetadataService creates a new keyMetadataService instance
func NewKeyMetadataService(keyMetaRepo keys.KeyMetaRepository, logger logger.Logger) (keys.KeyMetadataService, error) {
	if keyMetaRepo == nil {
		return nil, fmt.Errorf("key metadata repository cannot be nil")
	}
	return &keyMetadataService{
		keyMetaRepo: keyMetaRepo,
		logger:      logger,
	}, nil
}

// List retrieves key metadata matching query.
func (s *keyMetadataService) List(ctx context.Context, query *keys.KeyMetaQuery) ([]*keys.KeyMeta, error) {
	keyMetas, err := s.keyMetaRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list key metadata: %w", err)
	}
	return keyMetas, nil
}

// GetByID retrieves the metadata record keyID.
func (s *keyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	keyMeta, err := s.keyMetaRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get key metadata: %w", err)
	}
	return keyMeta, nil
}

// DeleteByID removes the metadata record keyID. Key files on disk are not touched.
func (s *keyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	if err := s.keyMetaRepo.DeleteByID(ctx, keyID); err != nil {
		return fmt.Errorf("failed to delete key metadata: %w", err)
	}
	s.logger.Info("Removed key metadata ", keyID)
	return nil
}
