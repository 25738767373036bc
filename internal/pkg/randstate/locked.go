package randstate

import (
	"math/big"
	"sync"
)

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src so that every draw holds an exclusive lock.
func NewLocked(src Source) Source {
	return &lockedSource{src: src}
}

func (l *lockedSource) Int(bound *big.Int) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Int(bound)
}

func (l *lockedSource) Bits(n uint) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Bits(n)
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}
