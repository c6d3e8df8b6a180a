package auth

import "context"

// RequestContext is the immutable per-call snapshot derived from one
// request's headers plus the resolved identity. Exactly one is produced per
// inbound call; it carries no raw secret, only a hash fingerprint of the
// credential.
type RequestContext struct {
	// Headers is the case-normalized header map the context was built from.
	Headers Headers

	// RequestID is stable for the call: transport-provided when available,
	// else freshly generated.
	RequestID string

	// SessionID prefers a transport-managed session id, falling back to
	// the request id.
	SessionID string

	ForwardedFor string
	UserAgent    string
	Tenant       string

	// AuthScheme and AuthTokenSHA256 summarize the Authorization header
	// without retaining its raw value.
	AuthScheme      string
	AuthTokenSHA256 string

	// AssumeUser is the validated or impersonated principal; UserID mirrors it.
	AssumeUser string
	UserID     string

	// ClientSessionID and CorrelationID are client-provided identifiers,
	// kept separate from the transport-managed session.
	ClientSessionID string
	CorrelationID   string
}

// Context keys for auth-related values.
type contextKey int

const (
	requestContextKey contextKey = iota
	headersKey
)

// WithRequestContext returns a context carrying the request context.
// Each call's value is scoped to that call's context chain, so concurrent
// calls never observe each other's identity.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// RequestContextFromContext retrieves the request context, or nil. Absence
// means "no identity available" and is tolerated downstream, never fatal.
func RequestContextFromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey).(*RequestContext)
	return rc
}

// WithHeaders returns a context carrying normalized request headers.
func WithHeaders(ctx context.Context, h Headers) context.Context {
	return context.WithValue(ctx, headersKey, h)
}

// HeadersFromContext retrieves normalized headers, or nil.
func HeadersFromContext(ctx context.Context) Headers {
	h, _ := ctx.Value(headersKey).(Headers)
	return h
}
