package randstate

import (
	"errors"
	"math/big"
	"math/rand"
)

// ErrClosed is returned when a State is closed more than once.
var ErrClosed = errors.New("randstate: state already closed")

// Source produces uniform random integers.
type Source interface {
	// Int returns a uniform integer in [0, bound). bound must be positive.
	Int(bound *big.Int) *big.Int
	// Bits returns a uniform integer in [0, 2^n).
	Bits(n uint) *big.Int
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int
}

// State is a deterministic random engine seeded once at creation.
type State struct {
	rnd *rand.Rand
}

// New initializes a State from seed. Two states created with the same seed
// produce the same sequence of draws.
func New(seed uint64) *State {
	// #nosec G404 -- reproducible key generation requires a seedable generator
	return &State{rnd: rand.New(rand.NewSource(int64(seed)))}
}

// Int returns a uniform integer in [0, bound).
func (s *State) Int(bound *big.Int) *big.Int {
	if bound.Sign() <= 0 {
		panic("randstate: bound must be positive")
	}
	return new(big.Int).Rand(s.generator(), bound)
}

// Bits returns a uniform integer of at most n bits.
func (s *State) Bits(n uint) *big.Int {
	if n == 0 {
		s.generator()
		return new(big.Int)
	}
	bound := new(big.Int).Lsh(big.NewInt(1), n)
	return new(big.Int).Rand(s.generator(), bound)
}

// Intn returns a uniform integer in [0, n).
func (s *State) Intn(n int) int {
	return s.generator().Intn(n)
}

// Close releases the generator. Any draw after Close panics.
func (s *State) Close() error {
	if s.rnd == nil {
		return ErrClosed
	}
	s.rnd = nil
	return nil
}

func (s *State) generator() *rand.Rand {
	if s.rnd == nil {
		panic("randstate: draw from closed state")
	}
	return s.rnd
}
