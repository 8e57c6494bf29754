package pipeline

import "strings"

// missingMarker is how the review export spells an absent value.
const missingMarker = "missing"

// normalizeHeader cleans a header name for alias matching:
// BOM, surrounding whitespace and all quotes removed, lower-cased.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, `"`, "")
	return strings.ToLower(h)
}

// normalizeField strips surrounding whitespace (non-breaking spaces included). Case is preserved.
func normalizeField(s string) string {
	return strings.TrimSpace(s)
}
