//go:build unit || integration
// +build unit integration

package app

import (
	"context"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyMetaRepository is a mock implementation of KeyMetaRepository
type MockKeyMetaRepository struct {
	mock.Mock
}

func (m *MockKeyMetaRepository) Create(ctx context.Context, key *keys.KeyMeta) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockKeyMetaRepository) CreateBatch(ctx context.Context, keyMetas []*keys.KeyMeta) error {
	args := m.Called(ctx, keyMetas)
	return args.Error(0)
}

func (m *MockKeyMetaRepository) List(ctx context.Context, query *keys.KeyMetaQuery) ([]*keys.KeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyMetaRepository) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyMetaRepository) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}
