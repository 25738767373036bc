//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKeyGenerationService_Generate(t *testing.T) {
	repo := &MockKeyMetaRepository{}
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(metas []*keys.KeyMeta) bool {
		return len(metas) == 2
	})).Return(nil).Once()

	services := SetupTestServices(t, repo)
	req := NewTestGenerateRequest(t)

	result, err := services.KeyGenerationService.Generate(context.Background(), req)
	require.NoError(t, err)
	repo.AssertExpectations(t)

	keyPair, keyMetas := result.KeyPair, result.KeyMetas
	assert.Zero(t, result.PublicKey.N.Cmp(keyPair.N))
	assert.NotNil(t, result.PublicKey.S)

	assert.GreaterOrEqual(t, keyPair.N.BitLen(), TestModulusBits)
	require.Len(t, keyMetas, 2)

	pub, priv := keyMetas[0], keyMetas[1]
	assert.Equal(t, keys.KeyTypePublic, pub.Type)
	assert.Equal(t, keys.KeyTypePrivate, priv.Type)
	assert.Equal(t, pub.KeyPairID, priv.KeyPairID)
	assert.NotEqual(t, pub.ID, priv.ID)
	assert.Equal(t, Fingerprint(keyPair.N), pub.Fingerprint)
	assert.Equal(t, uint32(keyPair.N.BitLen()), pub.ModulusBits)
	assert.Equal(t, uint32(TestIterations), priv.Iterations)
	assert.NoError(t, pub.Validate())
	assert.NoError(t, priv.Validate())

	publicKey, err := services.RSAProcessor.ReadPublicKey(req.PublicKeyPath)
	require.NoError(t, err)
	assert.Equal(t, TestIdentity, publicKey.Identity)

	trusted, err := services.RSAProcessor.VerifyIdentity(publicKey)
	require.NoError(t, err)
	assert.True(t, trusted)

	info, err := os.Stat(req.PrivateKeyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestKeyGenerationService_Deterministic(t *testing.T) {
	services := SetupTestServices(t, nil)

	first, err := services.KeyGenerationService.Generate(context.Background(), NewTestGenerateRequest(t))
	require.NoError(t, err)
	second, err := services.KeyGenerationService.Generate(context.Background(), NewTestGenerateRequest(t))
	require.NoError(t, err)

	assert.Zero(t, first.KeyPair.N.Cmp(second.KeyPair.N))
	assert.Zero(t, first.KeyPair.D.Cmp(second.KeyPair.D))
	assert.Zero(t, first.PublicKey.S.Cmp(second.PublicKey.S))
}

func TestKeyGenerationService_InvalidRequest(t *testing.T) {
	services := SetupTestServices(t, nil)

	_, err := services.KeyGenerationService.Generate(context.Background(), nil)
	assert.Error(t, err)

	req := NewTestGenerateRequest(t)
	req.Identity = "not base62!"
	_, err = services.KeyGenerationService.Generate(context.Background(), req)
	assert.Error(t, err)

	_, statErr := os.Stat(req.PublicKeyPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestKeyGenerationService_Canceled(t *testing.T) {
	services := SetupTestServices(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := NewTestGenerateRequest(t)
	_, err := services.KeyGenerationService.Generate(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(req.PrivateKeyPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestKeyGenerationService_RepositoryFailure(t *testing.T) {
	repo := &MockKeyMetaRepository{}
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	services := SetupTestServices(t, repo)
	_, err := services.KeyGenerationService.Generate(context.Background(), NewTestGenerateRequest(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNewServices_NilProcessor(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	_, err := NewKeyGenerationService(nil, nil, logger)
	assert.Error(t, err)
	_, err = NewEncryptionService(nil, logger)
	assert.Error(t, err)
	_, err = NewDecryptionService(nil, logger)
	assert.Error(t, err)
	_, err = NewKeyMetadataService(nil, logger)
	assert.Error(t, err)
}

func TestKeyMetadataService(t *testing.T) {
	repo := &MockKeyMetaRepository{}
	service, err := NewKeyMetadataService(repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	listed := []*keys.KeyMeta{{ID: "a"}, {ID: "b"}}
	query := keys.NewKeyMetaQuery()
	repo.On("List", mock.Anything, query).Return(listed, nil).Once()
	repo.On("GetByID", mock.Anything, "a").Return(listed[0], nil).Once()
	repo.On("GetByID", mock.Anything, "missing").Return(nil, errors.New("not found")).Once()
	repo.On("DeleteByID", mock.Anything, "a").Return(nil).Once()
	repo.On("DeleteByID", mock.Anything, "missing").Return(errors.New("not found")).Once()

	got, err := service.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, listed, got)

	fetched, err := service.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", fetched.ID)
	_, err = service.GetByID(context.Background(), "missing")
	assert.ErrorContains(t, err, "failed to get key metadata")

	assert.NoError(t, service.DeleteByID(context.Background(), "a"))
	assert.Error(t, service.DeleteByID(context.Background(), "missing"))

	repo.AssertExpectations(t)
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint(big.NewInt(3233))
	assert.Len(t, fp, 64)
	assert.Equal(t, fp, Fingerprint(big.NewInt(3233)))
	assert.NotEqual(t, fp, Fingerprint(big.NewInt(3234)))
}
