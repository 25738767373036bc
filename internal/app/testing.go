//go:build unit || integration
// +build unit integration

package app

import (
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// Test key generation parameters
const (
	TestModulusBits = 256
	TestIterations  = 50
	TestSeed        = 42
	TestIdentity    = "alice"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	RSAProcessor         cryptoalg.RSAProcessor
	KeyGenerationService keys.KeyGenerationService
	EncryptionService    keys.EncryptionService
	DecryptionService    keys.DecryptionService
}

// SetupTestServices wires the application services around repo, which may be nil
func SetupTestServices(t *testing.T, repo keys.KeyMetaRepository) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	rsaProcessor, err := cryptography.NewRSAProcessor(logger, 0)
	require.NoError(t, err)

	keyGenerationService, err := NewKeyGenerationService(rsaProcessor, repo, logger)
	require.NoError(t, err)

	encryptionService, err := NewEncryptionService(rsaProcessor, logger)
	require.NoError(t, err)

	decryptionService, err := NewDecryptionService(rsaProcessor, logger)
	require.NoError(t, err)

	return &TestServices{
		RSAProcessor:         rsaProcessor,
		KeyGenerationService: keyGenerationService,
		EncryptionService:    encryptionService,
		DecryptionService:    decryptionService,
	}
}

// NewTestGenerateRequest returns a generate request writing into a per-test directory
func NewTestGenerateRequest(t *testing.T) *keys.GenerateRequest {
	t.Helper()

	pubPath, privPath := testutil.KeyPaths(t)
	return &keys.GenerateRequest{
		Bits:           TestModulusBits,
		Iterations:     TestIterations,
		Seed:           TestSeed,
		Identity:       TestIdentity,
		PublicKeyPath:  pubPath,
		PrivateKeyPath: privPath,
	}
}
