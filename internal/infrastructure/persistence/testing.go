//go:build integration
// +build integration

package persistence

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestFingerprint is a well-formed SHA-256 hex digest used by registry tests
const TestFingerprint = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

// postgresDSNEnv names the environment variable enabling the PostgreSQL tests
const postgresDSNEnv = "RSA_VAULT_TEST_POSTGRES_DSN"

// TestContext holds test database and repositories
type TestContext struct {
	DB          *gorm.DB
	KeyMetaRepo keys.KeyMetaRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		dsn := os.Getenv(postgresDSNEnv)
		if dsn == "" {
			t.Skipf("%s not set", postgresDSNEnv)
		}
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  dsn,
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			_ = DropDatabase(dsn+" dbname=postgres", uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := OpenRegistry(settings)
	require.NoError(t, err, "Failed to open registry database")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	repo, err := NewGormKeyMetaRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create key metadata repository")

	return &TestContext{
		DB:          db,
		KeyMetaRepo: repo,
	}
}

// CreateTestKeyMeta creates a public key metadata record with default values
func CreateTestKeyMeta(t *testing.T, identity string) *keys.KeyMeta {
	t.Helper()

	return &keys.KeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       uuid.NewString(),
		Type:            keys.KeyTypePublic,
		Identity:        identity,
		ModulusBits:     257,
		Iterations:      50,
		Path:            "/tmp/" + identity + ".pub",
		Fingerprint:     TestFingerprint,
		DateTimeCreated: time.Now().UTC(),
	}
}
