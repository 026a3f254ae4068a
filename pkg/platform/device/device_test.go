package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "empty user agent",
			raw:      "",
			expected: "Unknown Device",
		},
		{
			name:     "chrome on windows",
			raw:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected: "Chrome on Windows 10",
		},
		{
			name:     "firefox on linux",
			raw:      "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			expected: "Firefox on Linux x86_64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseUserAgent(tt.raw))
		})
	}
}

func TestParseUserAgentGarbageIsStable(t *testing.T) {
	first := ParseUserAgent("definitely not a user agent")
	second := ParseUserAgent("definitely not a user agent")
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}
