package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SqliteDbType selects the SQLite registry backend
const SqliteDbType = "sqlite"

// PostgresDbType selects the PostgreSQL registry backend
const PostgresDbType = "postgres"

// DatabaseSettings holds connection settings for the key registry.
// An empty Type disables the registry.
type DatabaseSettings struct {
	Type string `mapstructure:"type" validate:"omitempty,oneof=sqlite postgres"`
	DSN  string `mapstructure:"dsn" validate:"required_with=Type"`
	Name string `mapstructure:"name"`
}

// Enabled reports whether a registry backend is configured
func (s *DatabaseSettings) Enabled() bool {
	return s.Type != ""
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}
