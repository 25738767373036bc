// Package persistence provides the database repository of the key registry.
// It uses GORM as the ORM layer on top of SQLite or PostgreSQL and records
// metadata about generated key files, never the key material itself.
package persistence
