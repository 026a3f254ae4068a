// Package device turns raw User-Agent strings into short human-readable
// summaries for audit output.
package device

import (
	"fmt"

	"github.com/mssola/useragent"
)

// ParseUserAgent summarizes a User-Agent as "Browser on OS". Unknown agents
// still produce a stable, non-empty string.
func ParseUserAgent(raw string) string {
	if raw == "" {
		return "Unknown Device"
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	os := ua.OS()
	if name == "" {
		name = "Unknown Browser"
	}
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}
	return fmt.Sprintf("%s on %s", name, os)
}
