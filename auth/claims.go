package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// UnverifiedClaims decodes the payload of a JWT without verifying its
// signature. This is intentionally a heuristic used only to pick a display
// or principal name; the backing system proves token validity through its
// own login mechanism before any claim here is trusted.
func UnverifiedClaims(token string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return claims, nil
}

// MapPrincipal resolves a principal name from token claims using a
// configurable strategy:
//
//   - "claim:<name>": direct lookup of the named claim.
//   - "transform:sam": take preferred_username, upn, or sub and strip any
//     domain or realm qualifier ("user@realm" and "DOMAIN\user" both
//     resolve to "user").
//   - "username": use the fallback value as-is.
//
// When no strategy yields a value the fallback is returned; an empty
// fallback signals failure to the caller.
func MapPrincipal(claims map[string]any, strategy, fallback string) string {
	switch {
	case strings.HasPrefix(strategy, "claim:"):
		name := strings.TrimPrefix(strategy, "claim:")
		if v, ok := claims[name].(string); ok && v != "" {
			return v
		}

	case strategy == "transform:sam":
		for _, name := range []string{"preferred_username", "upn", "sub"} {
			v, ok := claims[name].(string)
			if !ok || v == "" {
				continue
			}
			if user, _, found := strings.Cut(v, "@"); found {
				return user
			}
			if _, user, found := strings.Cut(v, `\`); found {
				return user
			}
			return v
		}

	case strategy == "username":
		return fallback
	}

	return fallback
}
