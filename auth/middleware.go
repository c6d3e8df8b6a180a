package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/jonwraymond/sessionband/observe"
)

// Mode selects the middleware's authentication state machine.
type Mode string

const (
	// ModeNone ignores Authorization headers entirely and honors a
	// validated impersonation header instead.
	ModeNone Mode = "none"

	// ModeBasic requires an Authorization header and validates it against
	// the backing system, consulting the secure cache first.
	ModeBasic Mode = "basic"
)

// assumeUserPattern is the strict identifier shape accepted for
// impersonation headers.
var assumeUserPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,30}$`)

// MiddlewareConfig configures the request-context middleware.
type MiddlewareConfig struct {
	// Mode selects the auth state machine branch.
	// Default: ModeNone
	Mode Mode

	// Metrics records cache lookup outcomes in ModeBasic. Nil disables
	// recording.
	Metrics observe.Metrics
}

// Middleware builds one immutable RequestContext per inbound call: it
// normalizes headers, resolves the auth mode, consults the cache, falls back
// to the validator, and fails closed on policy violations.
type Middleware struct {
	config    MiddlewareConfig
	cache     *SecureCache
	validator CredentialValidator
	logger    observe.Logger
	metrics   observe.Metrics
}

// NewMiddleware creates a middleware. The cache and validator may be nil in
// ModeNone, where they are never consulted.
func NewMiddleware(config MiddlewareConfig, cache *SecureCache, validator CredentialValidator, logger observe.Logger) *Middleware {
	if config.Mode == "" {
		config.Mode = ModeNone
	}
	if config.Metrics == nil {
		config.Metrics = observe.NopMetrics()
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Middleware{
		config:    config,
		cache:     cache,
		validator: validator,
		logger:    logger,
		metrics:   config.Metrics,
	}
}

// Build assembles the RequestContext for one call. requestID and sessionID
// are the transport-managed identifiers when the host transport supplies
// them; empty values degrade to generated ones. A nil header map degrades to
// "no identity available" rather than failing.
//
// Fatal conditions fail the call with an error wrapping ErrPermissionDenied;
// they never crash the process and never downgrade to anonymous access.
func (m *Middleware) Build(ctx context.Context, headers Headers, requestID, sessionID string) (*RequestContext, error) {
	if headers == nil {
		headers = Headers{}
	}

	if requestID == "" {
		requestID = uuid.NewString()
	}
	if sessionID == "" {
		sessionID = requestID
	}

	authHdr := headers.Get("authorization")
	authScheme, _ := ParseAuthHeader(authHdr)
	fingerprint := Fingerprint(authHdr)

	assumeUser, err := m.resolvePrincipal(ctx, headers, authHdr, authScheme, fingerprint, sessionID)
	if err != nil {
		return nil, err
	}

	correlationID := headers.Get("x-correlation-id")
	if correlationID == "" {
		correlationID = headers.Get("correlation-id")
	}
	tenant := headers.Get("x-td-tenant")
	if tenant == "" {
		tenant = headers.Get("x-tenant")
	}

	return &RequestContext{
		Headers:         headers,
		RequestID:       requestID,
		SessionID:       sessionID,
		ForwardedFor:    headers.Get("x-forwarded-for"),
		UserAgent:       headers.Get("user-agent"),
		Tenant:          tenant,
		AuthScheme:      authScheme,
		AuthTokenSHA256: fingerprint,
		AssumeUser:      assumeUser,
		UserID:          assumeUser,
		ClientSessionID: headers.Get("x-session-id"),
		CorrelationID:   correlationID,
	}, nil
}

func (m *Middleware) resolvePrincipal(ctx context.Context, headers Headers, authHdr, authScheme, fingerprint, sessionID string) (string, error) {
	switch m.config.Mode {
	case ModeBasic:
		return m.resolveBasic(ctx, authHdr, authScheme, fingerprint, sessionID)
	default:
		// ModeNone: bearer tokens carry no meaning; only the
		// impersonation header is honored, and only when well-formed.
		assume := headers.Get("x-assume-user")
		if assume == "" {
			return "", nil
		}
		if !assumeUserPattern.MatchString(assume) {
			m.logger.Warn(ctx, "ignoring malformed impersonation header",
				observe.Field{Key: "session_id", Value: sessionID})
			return "", nil
		}
		return assume, nil
	}
}

func (m *Middleware) resolveBasic(ctx context.Context, authHdr, authScheme, fingerprint, sessionID string) (string, error) {
	if authHdr == "" {
		m.rejected(ctx, sessionID, "missing authorization header")
		return "", fmt.Errorf("%w: %w: authentication required", ErrPermissionDenied, ErrMissingCredentials)
	}

	if m.cache != nil {
		principal, ok := m.cache.Get(sessionID, fingerprint)
		m.metrics.RecordCacheLookup(ctx, ok)
		if ok {
			return principal, nil
		}
	}

	if authScheme != "basic" && authScheme != "bearer" {
		m.rejected(ctx, sessionID, "unsupported authorization scheme")
		return "", fmt.Errorf("%w: %w", ErrPermissionDenied, ErrUnsupportedScheme)
	}

	principal, err := m.validator.ValidateAuthHeader(ctx, authHdr)
	if err != nil {
		m.rejected(ctx, sessionID, "credential validation failed")
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrInvalidUsername) || errors.Is(err, ErrTokenMalformed) {
			return "", fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
		return "", fmt.Errorf("%w: authentication failed: %w", ErrPermissionDenied, err)
	}
	if principal == "" {
		m.rejected(ctx, sessionID, "credentials rejected by backing system")
		return "", fmt.Errorf("%w: %w", ErrPermissionDenied, ErrInvalidCredentials)
	}

	if m.cache != nil {
		m.cache.Set(sessionID, principal, fingerprint)
	}
	return principal, nil
}

// rejected logs an authentication rejection with its reason. The raw secret
// never appears in the record.
func (m *Middleware) rejected(ctx context.Context, sessionID, reason string) {
	m.logger.Warn(ctx, "authentication rejected",
		observe.Field{Key: "session_id", Value: sessionID},
		observe.Field{Key: "reason", Value: reason})
}
