package session

import "context"

type contextKey int

const sessionKey contextKey = iota

// WithSession returns a context carrying the session. The value is scoped to
// one call's context chain; concurrent calls never see each other's session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext retrieves the current session, or nil when none was published.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}
