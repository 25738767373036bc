package keys

import (
	"time"
)

// KeyTypePublic marks the metadata of a public key file
const KeyTypePublic = "public"

// KeyTypePrivate marks the metadata of a private key file
const KeyTypePrivate = "private"

// KeyMeta describes one persisted key file of a generated key pair.
// It never carries private exponents, primes or the generation seed.
type KeyMeta struct {
	ID              string    `validate:"required,uuid4"`
	KeyPairID       string    `validate:"required,uuid4"`
	Type            string    `validate:"required,oneof=public private"`
	Identity        string    `validate:"required,base62"`
	ModulusBits     uint32    `validate:"required,gt=0"`
	Iterations      uint32    `validate:"required,gt=0"`
	Path            string    `validate:"required"`
	Fingerprint     string    `validate:"required,hexadecimal,len=64"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating KeyMeta struct
func (k *KeyMeta) Validate() error {
	return validateStruct(k)
}

// KeyMetaQuery filters and pages key metadata listings.
type KeyMetaQuery struct {
	Identity  string `validate:"omitempty,base62"`
	Type      string `validate:"omitempty,oneof=public private"`
	KeyPairID string `validate:"omitempty,uuid4"`

	Limit  int `validate:"omitempty,gt=0"`
	Offset int `validate:"omitempty,gte=0"`

	SortBy    string `validate:"omitempty,oneof=date_time_created modulus_bits identity"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewKeyMetaQuery creates a KeyMetaQuery with default values.
func NewKeyMetaQuery() *KeyMetaQuery {
	return &KeyMetaQuery{
		Limit:     10,
		Offset:    0,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating KeyMetaQuery struct
func (q *KeyMetaQuery) Validate() error {
	return validateStruct(q)
}
