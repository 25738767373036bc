// Package app implements the application services of the vault: key generation
// with identity signing and registry bookkeeping, and stream encryption and decryption
// with key files.
package app
