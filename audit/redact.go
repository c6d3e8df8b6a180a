package audit

import "strings"

// RedactionMarker replaces values whose keys look sensitive.
const RedactionMarker = "[REDACTED]"

// TruncationMarker terminates over-long string values.
const TruncationMarker = "...[TRUNCATED]"

// maxValueLen is the length beyond which string values are truncated.
const maxValueLen = 1000

// keptPrefixLen is how much of a truncated value survives.
const keptPrefixLen = 100

// sensitiveKeywords match parameter keys by case-insensitive substring.
var sensitiveKeywords = []string{"password", "token", "secret", "key", "auth", "credential"}

// RedactParameters returns a copy of params safe for logging: values under
// sensitive-looking keys are replaced with the redaction marker, and long
// string values are truncated.
func RedactParameters(params map[string]any) map[string]any {
	redacted := make(map[string]any, len(params))
	for key, value := range params {
		switch {
		case isSensitiveKey(key):
			redacted[key] = RedactionMarker
		default:
			if s, ok := value.(string); ok && len(s) > maxValueLen {
				redacted[key] = s[:keptPrefixLen] + TruncationMarker
			} else {
				redacted[key] = value
			}
		}
	}
	return redacted
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
