package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  openid  ", "profile  ", "  email"},
			expected: []string{"openid", "profile", "email"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"openid", "profile", "openid", "email", "profile"},
			expected: []string{"openid", "profile", "email"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"openid", "", "  ", "profile"},
			expected: []string{"openid", "profile"},
		},
		{
			name:     "preserves case",
			input:    []string{"Openid", "openid"},
			expected: []string{"Openid", "openid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
