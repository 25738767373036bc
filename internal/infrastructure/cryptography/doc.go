// Package cryptography implements RSA on top of the numtheory and randstate packages:
// key generation, sentinel-framed stream encryption and decryption, identity signatures
// and the text formats of public and private key files.
package cryptography
