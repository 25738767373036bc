package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"gorm.io/gorm"
)

// ErrKeyMetaNotFound is returned when no metadata record matches an ID
var ErrKeyMetaNotFound = errors.New("key metadata not found")

type gormKeyMetaRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormKeyMetaRepository creates a new GORM-based KeyMetaRepository implementation
func NewGormKeyMetaRepository(db *gorm.DB, logger logger.Logger) (keys.KeyMetaRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &gormKeyMetaRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormKeyMetaRepository) Create(ctx context.Context, key *keys.KeyMeta) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.KeyMetaModel{}
	model.FromDomain(key)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create key metadata: %w", err)
	}

	r.logger.Info("Created key metadata with id ", key.ID)
	return nil
}

func (r *gormKeyMetaRepository) CreateBatch(ctx context.Context, keyMetas []*keys.KeyMeta) error {
	modelList := make([]*models.KeyMetaModel, len(keyMetas))
	for i, key := range keyMetas {
		if err := key.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}
		modelList[i] = &models.KeyMetaModel{}
		modelList[i].FromDomain(key)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range modelList {
			if err := tx.Create(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create key metadata: %w", err)
	}

	r.logger.Info("Created ", len(keyMetas), " key metadata records")
	return nil
}

func (r *gormKeyMetaRepository) List(ctx context.Context, query *keys.KeyMetaQuery) ([]*keys.KeyMeta, error) {
	if query == nil {
		query = keys.NewKeyMetaQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.KeyMetaModel
	dbQuery := r.db.WithContext(ctx).Model(&models.KeyMetaModel{})

	if query.Identity != "" {
		dbQuery = dbQuery.Where("identity = ?", query.Identity)
	}
	if query.Type != "" {
		dbQuery = dbQuery.Where("type = ?", query.Type)
	}
	if query.KeyPairID != "" {
		dbQuery = dbQuery.Where("key_pair_id = ?", query.KeyPairID)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		// SortBy and SortOrder are restricted to known columns by query validation
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch key metadata: %w", err)
	}

	domainList := make([]*keys.KeyMeta, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormKeyMetaRepository) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	var model models.KeyMetaModel
	if err := r.db.WithContext(ctx).Where("id = ?", keyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("key with ID %s: %w", keyID, ErrKeyMetaNotFound)
		}
		return nil, fmt.Errorf("failed to fetch key metadata: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormKeyMetaRepository) DeleteByID(ctx context.Context, keyID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", keyID).Delete(&models.KeyMetaModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete key metadata: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("key with ID %s: %w", keyID, ErrKeyMetaNotFound)
	}

	r.logger.Info("Deleted key metadata with id ", keyID)
	return nil
}
