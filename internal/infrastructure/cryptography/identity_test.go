//go:build unit
// +build unit

package cryptography

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIdentity(t *testing.T) {
	tests := []struct {
		identity string
		want     int64
	}{
		{"0", 0},
		{"9", 9},
		{"A", 10},
		{"Z", 35},
		{"a", 36},
		{"z", 61},
		{"10", 62},
		{"zz", 62*62 - 1},
		{"007", 7},
		{"alice", ((((36*62+47)*62+44)*62+38)*62 + 40)},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			got, err := EncodeIdentity(tt.identity)
			require.NoError(t, err)
			assertBigEqual(t, big.NewInt(tt.want), got)
		})
	}
}

func TestEncodeIdentity_Invalid(t *testing.T) {
	for _, identity := range []string{"", "bob smith", "alice@example", "é", "-1"} {
		_, err := EncodeIdentity(identity)
		assert.ErrorIs(t, err, ErrInvalidIdentity, "identity %q", identity)
	}
}

func TestSignVerifyIdentity(t *testing.T) {
	keyPair := generateTestKeyPair(t, TestModulusBits, TestSeed)

	s, err := SignIdentity("alice", keyPair.D, keyPair.N)
	require.NoError(t, err)

	valid, err := VerifyIdentity("alice", s, keyPair.E, keyPair.N)
	require.NoError(t, err)
	assert.True(t, valid)

	t.Run("other identity", func(t *testing.T) {
		valid, err := VerifyIdentity("mallory", s, keyPair.E, keyPair.N)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("flipped signature bit", func(t *testing.T) {
		tampered := new(big.Int).SetBit(s, 0, s.Bit(0)^1)
		valid, err := VerifyIdentity("alice", tampered, keyPair.E, keyPair.N)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("invalid identity", func(t *testing.T) {
		_, err := VerifyIdentity("not valid", s, keyPair.E, keyPair.N)
		assert.ErrorIs(t, err, ErrInvalidIdentity)
	})
}

func TestSignIdentity_TooLarge(t *testing.T) {
	keyPair := generateTestKeyPair(t, 64, TestSeed)

	// 30 base-62 digits encode far more than 66 bits
	_, err := SignIdentity(strings.Repeat("z", 30), keyPair.D, keyPair.N)
	assert.ErrorIs(t, err, ErrIdentityTooLarge)
}
