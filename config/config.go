package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/joeshaw/envdecode"

	"github.com/jonwraymond/sessionband/auth"
	"github.com/jonwraymond/sessionband/observe"
	"github.com/jonwraymond/sessionband/queryband"
)

// ErrInvalidAuthMode indicates an unrecognized AUTH_MODE value.
var ErrInvalidAuthMode = errors.New("config: invalid auth mode")

// ErrInvalidDatabaseURI indicates DATABASE_URI could not be parsed.
var ErrInvalidDatabaseURI = errors.New("config: invalid database uri")

// Settings is the full environment-derived configuration.
type Settings struct {
	// AuthMode selects the request auth state machine. ENV: AUTH_MODE
	AuthMode string `env:"AUTH_MODE,default=none"`

	// AuthCacheTTLSeconds bounds trust in a validated credential.
	// ENV: AUTH_CACHE_TTL
	AuthCacheTTLSeconds int `env:"AUTH_CACHE_TTL,default=300"`

	// RateLimitAttempts and RateLimitWindowSeconds shape the failed-attempt
	// limiter. ENV: AUTH_RATE_LIMIT_ATTEMPTS, AUTH_RATE_LIMIT_WINDOW
	RateLimitAttempts      int `env:"AUTH_RATE_LIMIT_ATTEMPTS,default=5"`
	RateLimitWindowSeconds int `env:"AUTH_RATE_LIMIT_WINDOW,default=60"`

	// LogMech is the login mechanism for password probes. ENV: LOGMECH
	LogMech string `env:"LOGMECH,default=TD2"`

	// MapStrategy selects how Bearer claims map to a principal.
	// ENV: USERMAP_STRATEGY
	MapStrategy string `env:"USERMAP_STRATEGY,default=claim:preferred_username"`

	// FallbackPrincipal is used when no claim strategy yields a value.
	// ENV: USERMAP_FALLBACK
	FallbackPrincipal string `env:"USERMAP_FALLBACK,default="`

	// DatabaseURI locates the backing system for probe connections, e.g.
	// teradata://host:1025/db. ENV: DATABASE_URI
	DatabaseURI string `env:"DATABASE_URI,default="`

	// ProbeTimeoutSeconds bounds one credential probe. ENV: AUTH_PROBE_TIMEOUT
	ProbeTimeoutSeconds int `env:"AUTH_PROBE_TIMEOUT,default=5"`

	// SessionMaxAge is the idle expiry for registry sweeps.
	// ENV: SESSION_MAX_AGE
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE,default=24h"`

	// ApplicationName leads every audit band. ENV: APPLICATION_NAME
	ApplicationName string `env:"APPLICATION_NAME,default=sessionband"`

	// LogLevel filters structured log output. ENV: LOGGING_LEVEL
	LogLevel string `env:"LOGGING_LEVEL,default=info"`

	// TracingExporter and MetricsExporter select telemetry backends.
	// ENV: TRACING_EXPORTER, METRICS_EXPORTER
	TracingExporter string `env:"TRACING_EXPORTER,default=none"`
	MetricsExporter string `env:"METRICS_EXPORTER,default=none"`
}

// FromEnv decodes Settings from the environment and validates them.
func FromEnv() (*Settings, error) {
	var s Settings
	if err := envdecode.Decode(&s); err != nil {
		// envdecode fails when a struct carries no required fields and
		// nothing is set; defaults still applied above make that benign.
		if !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil, fmt.Errorf("config: decode environment: %w", err)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks cross-field constraints not expressible in tags.
func (s *Settings) Validate() error {
	switch auth.Mode(s.AuthMode) {
	case auth.ModeNone, auth.ModeBasic:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAuthMode, s.AuthMode)
	}
	if s.DatabaseURI != "" {
		if _, err := parseDatabaseURI(s.DatabaseURI); err != nil {
			return err
		}
	}
	if auth.Mode(s.AuthMode) == auth.ModeBasic && s.DatabaseURI == "" {
		return fmt.Errorf("%w: required in basic auth mode", ErrInvalidDatabaseURI)
	}
	return nil
}

// MiddlewareConfig derives the request-context middleware configuration.
func (s *Settings) MiddlewareConfig() auth.MiddlewareConfig {
	return auth.MiddlewareConfig{Mode: auth.Mode(s.AuthMode)}
}

// CacheConfig derives the secure auth cache configuration.
func (s *Settings) CacheConfig() auth.CacheConfig {
	return auth.CacheConfig{TTL: time.Duration(s.AuthCacheTTLSeconds) * time.Second}
}

// LimiterConfig derives the failed-attempt limiter configuration.
func (s *Settings) LimiterConfig() auth.AttemptLimiterConfig {
	return auth.AttemptLimiterConfig{
		MaxAttempts: s.RateLimitAttempts,
		Window:      time.Duration(s.RateLimitWindowSeconds) * time.Second,
	}
}

// ValidatorConfig derives the credential validator configuration.
func (s *Settings) ValidatorConfig() auth.ValidatorConfig {
	return auth.ValidatorConfig{
		DefaultLogMech:    s.LogMech,
		MapStrategy:       s.MapStrategy,
		FallbackPrincipal: s.FallbackPrincipal,
	}
}

// ProberConfig derives the probe configuration from DATABASE_URI. An empty
// URI yields a zero-host config; callers gate probing on AuthMode.
func (s *Settings) ProberConfig() (auth.ProberConfig, error) {
	cfg := auth.ProberConfig{
		Timeout: time.Duration(s.ProbeTimeoutSeconds) * time.Second,
	}
	if s.DatabaseURI == "" {
		return cfg, nil
	}
	u, err := parseDatabaseURI(s.DatabaseURI)
	if err != nil {
		return auth.ProberConfig{}, err
	}
	cfg.Driver = u.Scheme
	cfg.Host = u.Hostname()
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return auth.ProberConfig{}, fmt.Errorf("%w: port %q", ErrInvalidDatabaseURI, p)
		}
		cfg.Port = port
	}
	if len(u.Path) > 1 {
		cfg.Database = u.Path[1:]
	}
	return cfg, nil
}

// BuilderConfig derives the audit band builder configuration.
func (s *Settings) BuilderConfig() queryband.BuilderConfig {
	return queryband.BuilderConfig{Application: s.ApplicationName}
}

// ObserveConfig derives the telemetry configuration.
func (s *Settings) ObserveConfig() observe.Config {
	return observe.Config{
		ServiceName: s.ApplicationName,
		Tracing: observe.TracingConfig{
			Enabled:   s.TracingExporter != "" && s.TracingExporter != "none",
			Exporter:  s.TracingExporter,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  s.MetricsExporter != "" && s.MetricsExporter != "none",
			Exporter: s.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   s.LogLevel,
		},
	}
}

func parseDatabaseURI(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDatabaseURI, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: scheme and host are required", ErrInvalidDatabaseURI)
	}
	return u, nil
}
