package numtheory

import (
	"errors"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
)

// ErrAttemptsExhausted is returned when a bounded prime search gives up.
var ErrAttemptsExhausted = errors.New("numtheory: maximum number of attempts exhausted")

var three = big.NewInt(3)

// IsPrime reports whether n is probably prime after iters Miller-Rabin rounds.
// Primes always pass; a composite passes with probability at most 4^-iters.
func IsPrime(n *big.Int, iters uint, rng randstate.Source) bool {
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true
	}
	if n.Cmp(one) <= 0 || n.Bit(0) == 0 {
		return false
	}

	nMinusOne := new(big.Int).Sub(n, one)
	s := nMinusOne.TrailingZeroBits()
	r := new(big.Int).Rsh(nMinusOne, s)

	// witnesses are drawn from [2, n-2]
	span := new(big.Int).Sub(n, three)
	for i := uint(0); i < iters; i++ {
		a := rng.Int(span)
		a.Add(a, two)

		y := PowMod(a, r, n)
		if y.Cmp(one) == 0 || y.Cmp(nMinusOne) == 0 {
			continue
		}
		for j := uint(1); j < s && y.Cmp(nMinusOne) != 0; j++ {
			y = PowMod(y, two, n)
			if y.Cmp(one) == 0 {
				return false
			}
		}
		if y.Cmp(nMinusOne) != 0 {
			return false
		}
	}
	return true
}

// MakePrime draws random integers of bits+1 bits until one has its top bit set
// and passes IsPrime, so the result has exactly bits+1 bits. A maxAttempts of
// zero searches without bound.
func MakePrime(rng randstate.Source, bits, iters uint, maxAttempts int) (*big.Int, error) {
	size := int(bits) + 1
	for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
		p := rng.Bits(uint(size))
		if p.BitLen() < size {
			continue
		}
		if IsPrime(p, iters, rng) {
			return p, nil
		}
	}
	return nil, ErrAttemptsExhausted
}
