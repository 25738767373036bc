// Package cryptoalg defines the processor interfaces for the cryptographic operations
// offered by the vault: RSA key generation, block encryption and decryption of byte
// streams, and identity signing and verification.
package cryptoalg
