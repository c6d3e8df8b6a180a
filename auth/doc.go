// Package auth provides request-scoped identity for calls fronting a shared
// database connection pool.
//
// It covers header-based credential extraction, a TTL-bounded secure auth
// cache, failed-attempt rate limiting, external credential validation via
// short-lived probe connections, and per-call request context construction.
// The package is protocol-agnostic; an HTTP adapter is provided for callers
// that serve net/http.
package auth
