// Package models contains the GORM database models of the key registry.
package models
