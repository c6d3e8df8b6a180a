package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/sessionband/observe"
)

// CredentialValidator proves a credential is valid and maps it to a principal.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: returns typed sentinel errors (ErrRateLimited, ErrInvalidUsername,
//   ErrTokenMalformed) for attempt-ceiling and malformed-credential failures;
//   returns ("", nil) for "checked but not valid", which callers must treat
//   as a hard failure, not silently continue.
type CredentialValidator interface {
	ValidateAuthHeader(ctx context.Context, header string) (string, error)
}

// ValidatorConfig configures the credential validator.
type ValidatorConfig struct {
	// DefaultLogMech is the login mechanism used for Basic probes.
	// Default: "TD2"
	DefaultLogMech string

	// MapStrategy selects the principal-mapping strategy for Bearer claims.
	// See MapPrincipal for the recognized forms.
	// Default: "claim:preferred_username"
	MapStrategy string

	// FallbackPrincipal is used when no strategy yields a value. Empty
	// means Bearer validation fails when mapping fails.
	FallbackPrincipal string

	// Tracer brackets each external probe in a span. Nil disables tracing.
	Tracer observe.Tracer

	// Metrics records one attempt outcome per validation call. Nil
	// disables recording.
	Metrics observe.Metrics
}

// Validator validates Authorization headers against the backing system.
// Rate limiting runs before the external probe so blocked identities are
// rejected cheaply; concurrent probes of an identical credential collapse
// into one.
type Validator struct {
	config  ValidatorConfig
	prober  Prober
	limiter *AttemptLimiter
	logger  observe.Logger
	tracer  observe.Tracer
	metrics observe.Metrics
	group   singleflight.Group
}

// NewValidator creates a validator over the given prober and limiter.
func NewValidator(config ValidatorConfig, prober Prober, limiter *AttemptLimiter, logger observe.Logger) *Validator {
	if config.DefaultLogMech == "" {
		config.DefaultLogMech = "TD2"
	}
	if config.MapStrategy == "" {
		config.MapStrategy = "claim:preferred_username"
	}
	if config.Tracer == nil {
		config.Tracer = observe.NopTracer()
	}
	if config.Metrics == nil {
		config.Metrics = observe.NopMetrics()
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Validator{
		config:  config,
		prober:  prober,
		limiter: limiter,
		logger:  logger,
		tracer:  config.Tracer,
		metrics: config.Metrics,
	}
}

// ValidateAuthHeader validates an Authorization header and returns the
// principal to trust. Unsupported schemes return ("", nil) with no external
// call. A failed probe is terminal for the call; there is no retry.
func (v *Validator) ValidateAuthHeader(ctx context.Context, header string) (string, error) {
	scheme, value := ParseAuthHeader(header)

	switch scheme {
	case "basic":
		return v.validateBasic(ctx, value)
	case "bearer":
		return v.validateBearer(ctx, value)
	default:
		return "", nil
	}
}

func (v *Validator) validateBasic(ctx context.Context, value string) (string, error) {
	username, secret, ok := ParseBasicCredentials(value)
	if !ok {
		v.limiter.Fail("basic:" + shortHash(value))
		v.metrics.RecordAuthAttempt(ctx, "basic", "malformed")
		if username == "" {
			return "", ErrInvalidUsername
		}
		return "", ErrTokenMalformed
	}

	key := "basic:" + username
	if !v.limiter.Allow(key) {
		v.metrics.RecordAuthAttempt(ctx, "basic", "rate_limited")
		v.logger.Warn(ctx, "authentication rate limited",
			observe.Field{Key: "principal", Value: username})
		return "", ErrRateLimited
	}

	err := v.probeOnce(ctx, "basic", key, func(ctx context.Context) error {
		return v.prober.ProbePassword(ctx, username, secret, v.config.DefaultLogMech)
	})
	if err != nil {
		v.metrics.RecordAuthAttempt(ctx, "basic", "invalid")
		v.logger.Debug(ctx, "password validation failed",
			observe.Field{Key: "principal", Value: username},
			observe.Field{Key: "error", Value: err.Error()})
		return "", nil
	}
	v.metrics.RecordAuthAttempt(ctx, "basic", "success")
	return username, nil
}

func (v *Validator) validateBearer(ctx context.Context, token string) (string, error) {
	if token == "" {
		v.metrics.RecordAuthAttempt(ctx, "bearer", "malformed")
		return "", ErrTokenMalformed
	}

	key := "bearer:" + shortHash(token)
	if !v.limiter.Allow(key) {
		v.metrics.RecordAuthAttempt(ctx, "bearer", "rate_limited")
		v.logger.Warn(ctx, "authentication rate limited",
			observe.Field{Key: "credential_hash", Value: shortHash(token)})
		return "", ErrRateLimited
	}

	err := v.probeOnce(ctx, "bearer", key, func(ctx context.Context) error {
		return v.prober.ProbeToken(ctx, token)
	})
	if err != nil {
		v.metrics.RecordAuthAttempt(ctx, "bearer", "invalid")
		v.logger.Debug(ctx, "token validation failed",
			observe.Field{Key: "credential_hash", Value: shortHash(token)},
			observe.Field{Key: "error", Value: err.Error()})
		return "", nil
	}
	v.metrics.RecordAuthAttempt(ctx, "bearer", "success")

	// The probe proved validity; claims are only read to pick a principal
	// name, never to establish trust.
	claims, err := UnverifiedClaims(token)
	if err != nil {
		claims = map[string]any{}
	}
	principal := MapPrincipal(claims, v.config.MapStrategy, v.config.FallbackPrincipal)
	return principal, nil
}

// probeOnce collapses concurrent probes of the same credential into one
// external call. The probe runs detached from the winning caller's
// cancellation: its lifetime is bounded by the prober's own timeout, so
// collapsed waiters see the probe's outcome, never the winner's ctx error.
// One shared external failure counts once against the limiter.
func (v *Validator) probeOnce(ctx context.Context, scheme, key string, probe func(context.Context) error) error {
	_, err, _ := v.group.Do(key, func() (any, error) {
		pctx, span := v.tracer.StartProbe(context.WithoutCancel(ctx), scheme)
		err := probe(pctx)
		v.tracer.EndSpan(span, err)
		if err != nil {
			v.limiter.Fail(key)
		}
		return nil, err
	})
	return err
}

func shortHash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}

// Ensure Validator implements CredentialValidator
var _ CredentialValidator = (*Validator)(nil)
