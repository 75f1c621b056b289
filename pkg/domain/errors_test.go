package domain_test

import (
	"strings"
	"testing"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"s1", true},
		{"0b4c7a8e-6d2f-4d0e-9a55-3c1c5e0f4a11", true},
		{"chat.default_2", true},
		{"", false},
		{".hidden", false},
		{"../escape", false},
		{"a/b", false},
		{"with space", false},
		{"forêt", false},
		{strings.Repeat("x", domain.MaxSessionIDLength), true},
		{strings.Repeat("x", domain.MaxSessionIDLength+1), false},
	}
	for _, tt := range tests {
		err := domain.ValidateSessionID(tt.id)
		if tt.valid {
			assert.NoError(t, err, tt.id)
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidSessionID, tt.id)
		}
	}
}
