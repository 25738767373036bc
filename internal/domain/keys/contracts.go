package keys

import (
	"context"
	"io"
)

// KeyMetaRepository defines the interface for key metadata persistence
type KeyMetaRepository interface {
	Create(ctx context.Context, key *KeyMeta) error
	// CreateBatch stores all records or none of them.
	CreateBatch(ctx context.Context, keys []*KeyMeta) error
	List(ctx context.Context, query *KeyMetaQuery) ([]*KeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)
	DeleteByID(ctx context.Context, keyID string) error
}

// KeyGenerationService generates, signs and persists RSA key pairs.
type KeyGenerationService interface {
	// Generate creates a key pair for identity, writes the public and private key files
	// and records their metadata when a repository is configured.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
}

// GenerateResult is the outcome of a key generation run.
type GenerateResult struct {
	KeyPair   *KeyPair
	PublicKey *PublicKey
	// KeyMetas holds the public key record first, then the private key record.
	KeyMetas []*KeyMeta
}

// KeyMetadataService lists, retrieves and removes key metadata records.
type KeyMetadataService interface {
	// List retrieves key metadata considering a query filter when set.
	List(ctx context.Context, query *KeyMetaQuery) ([]*KeyMeta, error)

	// GetByID retrieves a single key metadata record.
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)

	// DeleteByID removes a key metadata record by ID. Key files are left untouched.
	DeleteByID(ctx context.Context, keyID string) error
}

// EncryptionService encrypts streams for the owner of a public key file.
type EncryptionService interface {
	// Encrypt reads the public key at publicKeyPath and encrypts r into w.
	// A key whose identity signature does not verify is refused with ErrUntrustedKey.
	Encrypt(ctx context.Context, publicKeyPath string, r io.Reader, w io.Writer) (*PublicKey, error)
}

// DecryptionService decrypts streams with a private key file.
type DecryptionService interface {
	Decrypt(ctx context.Context, privateKeyPath string, r io.Reader, w io.Writer) (*PrivateKey, error)
}

// GenerateRequest carries the parameters of a key generation run.
type GenerateRequest struct {
	Bits           uint   `validate:"required,gte=32,lte=16384"`
	Iterations     uint   `validate:"required,gte=1,lte=500"`
	Seed           uint64
	Identity       string `validate:"required,base62"`
	PublicKeyPath  string `validate:"required"`
	PrivateKeyPath string `validate:"required,nefield=PublicKeyPath"`
}

// Validate for validating GenerateRequest struct
func (r *GenerateRequest) Validate() error {
	return validateStruct(r)
}
