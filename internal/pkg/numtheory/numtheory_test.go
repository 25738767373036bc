//go:build unit
// +build unit

package numtheory

import (
	"math/big"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, seed uint64) *randstate.State {
	t.Helper()
	s := randstate.New(seed)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, expected int64
	}{
		{0, 0, 0},
		{12, 0, 12},
		{0, 12, 12},
		{12, 18, 6},
		{17, 5, 1},
		{270, 192, 6},
		{1071, 462, 21},
	}

	for _, tt := range tests {
		got := GCD(big.NewInt(tt.a), big.NewInt(tt.b))
		assert.Equal(t, tt.expected, got.Int64(), "gcd(%d, %d)", tt.a, tt.b)
	}
}

func TestGCD_DoesNotMutateOperands(t *testing.T) {
	a := big.NewInt(1071)
	b := big.NewInt(462)
	_ = GCD(a, b)
	assert.Equal(t, int64(1071), a.Int64())
	assert.Equal(t, int64(462), b.Int64())
}

func TestGCD_MatchesLibrary(t *testing.T) {
	rng := newTestState(t, 5)
	for i := 0; i < 200; i++ {
		a := rng.Bits(200)
		b := rng.Bits(150)
		expected := new(big.Int).GCD(nil, nil, a, b)
		assert.Equal(t, 0, expected.Cmp(GCD(a, b)))
	}
}

func TestModInverse_Coprime(t *testing.T) {
	rng := newTestState(t, 9)
	for i := 0; i < 200; i++ {
		n := rng.Bits(128)
		n.Add(n, two)
		a := rng.Int(n)
		if GCD(a, n).Cmp(one) != 0 {
			continue
		}

		inv, ok := ModInverse(a, n)
		require.True(t, ok)
		require.True(t, inv.Sign() >= 0)
		require.True(t, inv.Cmp(n) < 0)

		prod := new(big.Int).Mul(a, inv)
		assert.Equal(t, 0, prod.Mod(prod, n).Cmp(one))
	}
}

func TestModInverse_KnownValues(t *testing.T) {
	tests := []struct {
		a, n, expected int64
	}{
		{3, 11, 4},
		{10, 17, 12},
		{17, 3120, 2753},
		{1, 2, 1},
		{14, 13, 1},
		{-3, 7, 2},
	}

	for _, tt := range tests {
		inv, ok := ModInverse(big.NewInt(tt.a), big.NewInt(tt.n))
		require.True(t, ok, "inverse of %d mod %d", tt.a, tt.n)
		assert.Equal(t, tt.expected, inv.Int64(), "inverse of %d mod %d", tt.a, tt.n)
	}
}

func TestModInverse_NotCoprime(t *testing.T) {
	tests := []struct {
		a, n int64
	}{
		{0, 7},
		{2, 4},
		{6, 9},
		{12, 18},
		{3120, 17 * 3120},
	}

	for _, tt := range tests {
		inv, ok := ModInverse(big.NewInt(tt.a), big.NewInt(tt.n))
		assert.False(t, ok, "gcd(%d, %d) != 1", tt.a, tt.n)
		assert.Nil(t, inv)
	}
}

func TestPowMod_MatchesLibrary(t *testing.T) {
	rng := newTestState(t, 13)
	for i := 0; i < 200; i++ {
		base := rng.Bits(256)
		exponent := rng.Bits(uint(rng.Intn(300)))
		modulus := rng.Bits(256)
		modulus.Add(modulus, two)

		expected := new(big.Int).Exp(base, exponent, modulus)
		assert.Equal(t, 0, expected.Cmp(PowMod(base, exponent, modulus)))
	}
}

func TestPowMod_SlowReference(t *testing.T) {
	for base := int64(0); base < 12; base++ {
		for exp := int64(0); exp < 12; exp++ {
			modulus := int64(13)
			expected := int64(1)
			for i := int64(0); i < exp; i++ {
				expected = expected * base % modulus
			}
			got := PowMod(big.NewInt(base), big.NewInt(exp), big.NewInt(modulus))
			assert.Equal(t, expected, got.Int64(), "%d^%d mod %d", base, exp, modulus)
		}
	}
}

func TestPowMod_ZeroExponent(t *testing.T) {
	got := PowMod(big.NewInt(12345), big.NewInt(0), big.NewInt(97))
	assert.Equal(t, int64(1), got.Int64())
}

func TestPowMod_NegativeExponentPanics(t *testing.T) {
	assert.Panics(t, func() {
		PowMod(big.NewInt(2), big.NewInt(-1), big.NewInt(7))
	})
}
