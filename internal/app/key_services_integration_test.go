//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyServices_RegistryRoundTrip(t *testing.T) {
	dbContext := persistence.SetupTestDB(t, config.SqliteDbType)
	services := SetupTestServices(t, dbContext.KeyMetaRepo)

	metadataService, err := NewKeyMetadataService(dbContext.KeyMetaRepo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	result, err := services.KeyGenerationService.Generate(context.Background(), NewTestGenerateRequest(t))
	require.NoError(t, err)
	keyMetas := result.KeyMetas
	require.Len(t, keyMetas, 2)

	query := keys.NewKeyMetaQuery()
	query.KeyPairID = keyMetas[0].KeyPairID
	listed, err := metadataService.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	fetched, err := metadataService.GetByID(context.Background(), keyMetas[0].ID)
	require.NoError(t, err)
	assert.Equal(t, keyMetas[0].Fingerprint, fetched.Fingerprint)

	require.NoError(t, metadataService.DeleteByID(context.Background(), keyMetas[1].ID))

	listed, err = metadataService.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, keys.KeyTypePublic, listed[0].Type)
}
