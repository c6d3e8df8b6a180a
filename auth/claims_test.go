package auth

import (
	"errors"
	"testing"
)

func TestUnverifiedClaims(t *testing.T) {
	token := makeJWT(t, map[string]any{"sub": "u1", "preferred_username": "alice"})

	claims, err := UnverifiedClaims(token)
	if err != nil {
		t.Fatalf("UnverifiedClaims: %v", err)
	}
	if claims["sub"] != "u1" {
		t.Errorf("sub = %v, want u1", claims["sub"])
	}
	if claims["preferred_username"] != "alice" {
		t.Errorf("preferred_username = %v, want alice", claims["preferred_username"])
	}
}

func TestUnverifiedClaims_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not a jwt", "opaque-token"},
		{"two segments", "aaaa.bbbb"},
		{"bad payload", "eyJhbGciOiJub25lIn0.!!!.sig"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnverifiedClaims(tt.token)
			if !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("UnverifiedClaims(%q) err = %v, want ErrTokenMalformed", tt.token, err)
			}
		})
	}
}

func TestMapPrincipal(t *testing.T) {
	tests := []struct {
		name     string
		claims   map[string]any
		strategy string
		fallback string
		want     string
	}{
		{
			"direct claim",
			map[string]any{"preferred_username": "alice"},
			"claim:preferred_username", "", "alice",
		},
		{
			"direct claim other name",
			map[string]any{"email": "a@example.com"},
			"claim:email", "", "a@example.com",
		},
		{
			"direct claim absent uses fallback",
			map[string]any{"sub": "u1"},
			"claim:preferred_username", "svcuser", "svcuser",
		},
		{
			"direct claim wrong type uses fallback",
			map[string]any{"preferred_username": 42},
			"claim:preferred_username", "svcuser", "svcuser",
		},
		{
			"sam strips realm",
			map[string]any{"preferred_username": "alice@corp.example"},
			"transform:sam", "", "alice",
		},
		{
			"sam strips domain prefix",
			map[string]any{"preferred_username": `CORP\alice`},
			"transform:sam", "", "alice",
		},
		{
			"sam plain value passes through",
			map[string]any{"preferred_username": "alice"},
			"transform:sam", "", "alice",
		},
		{
			"sam falls back to upn",
			map[string]any{"upn": "bob@corp.example"},
			"transform:sam", "", "bob",
		},
		{
			"sam falls back to sub",
			map[string]any{"sub": "carol"},
			"transform:sam", "", "carol",
		},
		{
			"sam nothing usable",
			map[string]any{},
			"transform:sam", "svcuser", "svcuser",
		},
		{
			"username strategy uses fallback",
			map[string]any{"preferred_username": "alice"},
			"username", "svcuser", "svcuser",
		},
		{
			"unknown strategy uses fallback",
			map[string]any{"preferred_username": "alice"},
			"bogus", "svcuser", "svcuser",
		},
		{
			"empty fallback yields empty",
			map[string]any{},
			"claim:preferred_username", "", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPrincipal(tt.claims, tt.strategy, tt.fallback)
			if got != tt.want {
				t.Errorf("MapPrincipal(%v, %q, %q) = %q, want %q",
					tt.claims, tt.strategy, tt.fallback, got, tt.want)
			}
		})
	}
}
