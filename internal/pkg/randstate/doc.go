// Package randstate provides the seedable pseudo-random source used for primality
// testing, prime search and key generation.
//
// A State is created explicitly from a seed and closed exactly once after use.
// It is not safe for concurrent use; wrap it with NewLocked when draws may
// happen from several goroutines.
package randstate
