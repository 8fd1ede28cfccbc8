package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/finauth/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace and converts to lowercase", "  USER@EXAMPLE.COM  ", "user@example.com"},
		{"removes consecutive dots in local part", "user..name@example.com", "user.name@example.com"},
		{"removes leading and trailing dots in local part", ".user.name.@example.com", "user.name@example.com"},
		{"keeps plus tags", "User+Tag@Example.com", "user+tag@example.com"},
		{"leaves strings without at sign untouched", " Not-An-Email ", "not-an-email"},
		{"leaves double at untouched", "a@b@c.com", "a@b@c.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.NormalizeEmail(tt.input))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "j***@example.com", sanitizer.MaskEmail("joao@example.com"))
	assert.Equal(t, "*@example.com", sanitizer.MaskEmail("j@example.com"))
	assert.Equal(t, "c********@exemplo.com.br", sanitizer.MaskEmail("conceição@exemplo.com.br"))
	assert.Equal(t, "no-at-sign", sanitizer.MaskEmail("no-at-sign"))
	assert.Equal(t, "@example.com", sanitizer.MaskEmail("@example.com"))
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Maria da Silva", sanitizer.DisplayName("  Maria   da\tSilva \n"))
	assert.Equal(t, "", sanitizer.DisplayName("   "))
}
