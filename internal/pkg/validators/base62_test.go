//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type identityHolder struct {
	Identity string `validate:"required,base62"`
}

func TestIsBase62(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"alice", true},
		{"Bob42", true},
		{"0", true},
		{Base62Alphabet, true},
		{"", false},
		{"first.last", false},
		{"with space", false},
		{"under_score", false},
		{"ümlaut", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBase62(tt.input))
		})
	}
}

func TestBase62Validation(t *testing.T) {
	validate := New()

	assert.NoError(t, validate.Struct(&identityHolder{Identity: "alice"}))
	assert.Error(t, validate.Struct(&identityHolder{Identity: "alice@example"}))
	assert.Error(t, validate.Struct(&identityHolder{}))
}
