package queryband

import "strings"

// Sanitize replaces every character outside [A-Za-z0-9_-] with an
// underscore. Empty input yields "unknown". The function is idempotent:
// sanitized output passes through unchanged.
func Sanitize(value string) string {
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, c := range []byte(value) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SanitizeRaw prepares a value for direct inclusion in the SQL statement
// that sets the band: semicolons (the field delimiter) become underscores
// and single quotes are doubled for literal safety.
func SanitizeRaw(value string) string {
	s := strings.ReplaceAll(value, ";", "_")
	s = strings.ReplaceAll(s, "'", "''")
	return strings.TrimSpace(s)
}

// truncate bounds a string to at most n bytes.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
