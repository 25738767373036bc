package models

import (
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// KeyMetaModel is the GORM database model for key file metadata
type KeyMetaModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	KeyPairID       string    `gorm:"not null;index;type:uuid"`
	Type            string    `gorm:"not null;type:varchar(10)"`
	Identity        string    `gorm:"not null;index;type:varchar(255)"`
	ModulusBits     uint32    `gorm:"not null;type:integer"`
	Iterations      uint32    `gorm:"not null;type:integer"`
	Path            string    `gorm:"not null;type:text"`
	Fingerprint     string    `gorm:"not null;index;type:char(64)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (KeyMetaModel) TableName() string {
	return "key_metas"
}

// ToDomain converts GORM model to domain entity
func (m *KeyMetaModel) ToDomain() *keys.KeyMeta {
	return &keys.KeyMeta{
		ID:              m.ID,
		KeyPairID:       m.KeyPairID,
		Type:            m.Type,
		Identity:        m.Identity,
		ModulusBits:     m.ModulusBits,
		Iterations:      m.Iterations,
		Path:            m.Path,
		Fingerprint:     m.Fingerprint,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *KeyMetaModel) FromDomain(k *keys.KeyMeta) {
	m.ID = k.ID
	m.KeyPairID = k.KeyPairID
	m.Type = k.Type
	m.Identity = k.Identity
	m.ModulusBits = k.ModulusBits
	m.Iterations = k.Iterations
	m.Path = k.Path
	m.Fingerprint = k.Fingerprint
	m.DateTimeCreated = k.DateTimeCreated
}
