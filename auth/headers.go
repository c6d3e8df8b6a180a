package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

// Headers is a case-normalized header map: every key is lower-cased and each
// header carries its first value only.
type Headers map[string]string

// Get returns the value for a header name, normalizing the lookup key.
func (h Headers) Get(name string) string {
	if h == nil {
		return ""
	}
	return h[strings.ToLower(name)]
}

// NormalizeHeaders builds a Headers map from an http.Header, lower-casing
// keys and keeping the first value of each header.
func NormalizeHeaders(src http.Header) Headers {
	h := make(Headers, len(src))
	for k, vs := range src {
		if len(vs) == 0 {
			continue
		}
		h[strings.ToLower(k)] = vs[0]
	}
	return h
}

// NormalizeMap builds a Headers map from a plain string map.
func NormalizeMap(src map[string]string) Headers {
	h := make(Headers, len(src))
	for k, v := range src {
		h[strings.ToLower(k)] = v
	}
	return h
}

// ParseAuthHeader splits an Authorization header into (scheme, value).
// The scheme is lower-cased and both parts are trimmed. Returns ("", "")
// for a missing or malformed header.
func ParseAuthHeader(header string) (scheme, value string) {
	if header == "" {
		return "", ""
	}
	s, v, _ := strings.Cut(header, " ")
	return strings.ToLower(strings.TrimSpace(s)), strings.TrimSpace(v)
}

// ParseBasicCredentials decodes the credential portion of a Basic
// Authorization header into (username, secret). Returns ok=false on any
// decoding error, a payload without a colon, or an empty part. When the
// payload decoded to a name with an empty secret, the username is still
// returned so callers can distinguish the two malformed shapes.
func ParseBasicCredentials(b64 string) (username, secret string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", "", false
	}
	user, pass, found := strings.Cut(string(raw), ":")
	if !found {
		return "", "", false
	}
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return "", "", false
	}
	if pass == "" {
		return user, "", false
	}
	return user, pass, true
}

// Fingerprint returns the hex SHA-256 over the value portion of an
// Authorization header. The fingerprint stands in for the raw secret as a
// cache key and audit field. Returns "" if the header carries no value.
func Fingerprint(header string) string {
	_, value := ParseAuthHeader(header)
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
