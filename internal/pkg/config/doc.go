// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from an optional YAML file and RSA_VAULT_* environment variables,
// validated, and handed to the logger, the key registry and the key generation flow.
package config
