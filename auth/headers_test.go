package auth

import (
	"encoding/base64"
	"net/http"
	"testing"
)

func TestHeaders_Get(t *testing.T) {
	h := Headers{"authorization": "Bearer abc", "x-session-id": "s1"}

	tests := []struct {
		name   string
		lookup string
		want   string
	}{
		{"exact case", "authorization", "Bearer abc"},
		{"mixed case", "Authorization", "Bearer abc"},
		{"upper case", "X-SESSION-ID", "s1"},
		{"absent", "x-api-key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Get(tt.lookup); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.lookup, got, tt.want)
			}
		})
	}
}

func TestHeaders_Get_NilMap(t *testing.T) {
	var h Headers
	if got := h.Get("authorization"); got != "" {
		t.Errorf("Get on nil Headers = %q, want empty", got)
	}
}

func TestNormalizeHeaders(t *testing.T) {
	src := http.Header{}
	src.Add("Authorization", "Bearer tok")
	src.Add("X-Forwarded-For", "10.0.0.1")
	src.Add("X-Forwarded-For", "10.0.0.2")

	h := NormalizeHeaders(src)

	if got := h["authorization"]; got != "Bearer tok" {
		t.Errorf("authorization = %q, want %q", got, "Bearer tok")
	}
	// First value wins for repeated headers.
	if got := h["x-forwarded-for"]; got != "10.0.0.1" {
		t.Errorf("x-forwarded-for = %q, want %q", got, "10.0.0.1")
	}
}

func TestNormalizeMap(t *testing.T) {
	h := NormalizeMap(map[string]string{"X-Api-Key": "k1", "user-agent": "ua"})
	if got := h.Get("x-api-key"); got != "k1" {
		t.Errorf("x-api-key = %q, want %q", got, "k1")
	}
	if got := h.Get("User-Agent"); got != "ua" {
		t.Errorf("user-agent = %q, want %q", got, "ua")
	}
}

func TestParseAuthHeader(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantScheme string
		wantValue  string
	}{
		{"bearer", "Bearer abc123", "bearer", "abc123"},
		{"basic", "Basic dXNlcjpwYXNz", "basic", "dXNlcjpwYXNz"},
		{"lower scheme", "bearer tok", "bearer", "tok"},
		{"empty", "", "", ""},
		{"scheme only", "Bearer", "bearer", ""},
		{"extra spaces", "Basic   abc", "basic", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme, value := ParseAuthHeader(tt.header)
			if scheme != tt.wantScheme || value != tt.wantValue {
				t.Errorf("ParseAuthHeader(%q) = (%q, %q), want (%q, %q)",
					tt.header, scheme, value, tt.wantScheme, tt.wantValue)
			}
		})
	}
}

func TestParseBasicCredentials(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name         string
		payload      string
		wantUsername string
		wantSecret   string
		wantOK       bool
	}{
		{"valid", enc("alice:s3cret"), "alice", "s3cret", true},
		{"secret with colon", enc("alice:pa:ss"), "alice", "pa:ss", true},
		{"no colon", enc("alicepass"), "", "", false},
		{"empty username", enc(":pass"), "", "", false},
		{"empty secret", enc("alice:"), "alice", "", false},
		{"not base64", "!!!not-base64!!!", "", "", false},
		{"empty input", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, secret, ok := ParseBasicCredentials(tt.payload)
			if username != tt.wantUsername || secret != tt.wantSecret || ok != tt.wantOK {
				t.Errorf("ParseBasicCredentials(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.payload, username, secret, ok, tt.wantUsername, tt.wantSecret, tt.wantOK)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	fp1 := Fingerprint("Bearer tok-a")
	fp2 := Fingerprint("Bearer tok-b")
	fp3 := Fingerprint("Basic tok-a")

	if fp1 == "" {
		t.Fatal("Fingerprint returned empty for a valid header")
	}
	if len(fp1) != 64 {
		t.Errorf("Fingerprint length = %d, want 64 hex characters", len(fp1))
	}
	if fp1 == fp2 {
		t.Error("distinct credentials produced the same fingerprint")
	}
	// The scheme is not part of the fingerprint, only the credential value.
	if fp1 != fp3 {
		t.Error("same credential under different schemes produced different fingerprints")
	}
	if got := Fingerprint(""); got != "" {
		t.Errorf("Fingerprint(\"\") = %q, want empty", got)
	}
	if got := Fingerprint("Bearer"); got != "" {
		t.Errorf("Fingerprint with no value = %q, want empty", got)
	}
}
