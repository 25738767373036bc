// Package keys defines RSA key material and the metadata records kept for
// generated key pairs, together with the repository contract used to persist them.
package keys
