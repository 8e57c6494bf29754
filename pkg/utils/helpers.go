package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration string like "15s", falling back to def
func ParseDuration(d string, def time.Duration) time.Duration {
	if d == "" {
		return def
	}
	duration, err := time.ParseDuration(d)
	if err != nil || duration <= 0 {
		return def
	}
	return duration
}

// NormalizeText trims and lower-cases text for case-insensitive matching.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseInt parses an optional integer parameter. Empty input yields def.
func ParseInt(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
