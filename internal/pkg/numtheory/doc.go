// Package numtheory implements the number theory primitives RSA is built on:
// greatest common divisor, modular inverse, modular exponentiation and
// Miller-Rabin primality testing with random prime search.
package numtheory
