package auth

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Handler is HTTP middleware that builds the per-call RequestContext and
// attaches it (plus the normalized headers) to the request context.
//
// A rejected call surfaces as a generic JSON error; internal detail stays in
// server-side logs.
//
// Usage:
//
//	mux.Handle("/query", m.Handler(queryHandler))
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := NormalizeHeaders(r.Header)

		rc, err := m.Build(r.Context(), headers, r.Header.Get("X-Request-Id"), "")
		if err != nil {
			writeAuthError(w, err)
			return
		}

		ctx := WithRequestContext(r.Context(), rc)
		ctx = WithHeaders(ctx, headers)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeAuthError maps a fail-closed rejection onto a generic user-visible
// response. Raw credential material and internal detail never appear here.
func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	msg := "authentication required"
	switch {
	case errors.Is(err, ErrRateLimited):
		status = http.StatusTooManyRequests
		msg = "too many requests"
	case errors.Is(err, ErrMissingCredentials):
		msg = "authentication required"
	default:
		msg = "invalid credentials"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
