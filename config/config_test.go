package config

import (
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/sessionband/auth"
)

func TestFromEnv_Defaults(t *testing.T) {
	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if s.AuthMode != "none" {
		t.Errorf("AuthMode = %q, want none", s.AuthMode)
	}
	if s.AuthCacheTTLSeconds != 300 {
		t.Errorf("AuthCacheTTLSeconds = %d, want 300", s.AuthCacheTTLSeconds)
	}
	if s.RateLimitAttempts != 5 || s.RateLimitWindowSeconds != 60 {
		t.Errorf("rate limit = (%d, %d), want (5, 60)", s.RateLimitAttempts, s.RateLimitWindowSeconds)
	}
	if s.LogMech != "TD2" {
		t.Errorf("LogMech = %q, want TD2", s.LogMech)
	}
	if s.MapStrategy != "claim:preferred_username" {
		t.Errorf("MapStrategy = %q", s.MapStrategy)
	}
	if s.SessionMaxAge != 24*time.Hour {
		t.Errorf("SessionMaxAge = %v, want 24h", s.SessionMaxAge)
	}
	if s.ApplicationName != "sessionband" {
		t.Errorf("ApplicationName = %q", s.ApplicationName)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "basic")
	t.Setenv("AUTH_CACHE_TTL", "60")
	t.Setenv("AUTH_RATE_LIMIT_ATTEMPTS", "10")
	t.Setenv("DATABASE_URI", "teradata://db.example:1025/dbc")
	t.Setenv("SESSION_MAX_AGE", "1h")

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if s.AuthMode != "basic" {
		t.Errorf("AuthMode = %q, want basic", s.AuthMode)
	}
	if s.AuthCacheTTLSeconds != 60 {
		t.Errorf("AuthCacheTTLSeconds = %d, want 60", s.AuthCacheTTLSeconds)
	}
	if s.RateLimitAttempts != 10 {
		t.Errorf("RateLimitAttempts = %d, want 10", s.RateLimitAttempts)
	}
	if s.SessionMaxAge != time.Hour {
		t.Errorf("SessionMaxAge = %v, want 1h", s.SessionMaxAge)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{"mode none", Settings{AuthMode: "none"}, nil},
		{"mode basic with uri", Settings{AuthMode: "basic", DatabaseURI: "teradata://db:1025/dbc"}, nil},
		{"unknown mode", Settings{AuthMode: "oauth"}, ErrInvalidAuthMode},
		{"basic without uri", Settings{AuthMode: "basic"}, ErrInvalidDatabaseURI},
		{"uri missing host", Settings{AuthMode: "none", DatabaseURI: "teradata://"}, ErrInvalidDatabaseURI},
		{"uri missing scheme", Settings{AuthMode: "none", DatabaseURI: "db.example:1025"}, ErrInvalidDatabaseURI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_DerivedConfigs(t *testing.T) {
	s := &Settings{
		AuthMode:               "basic",
		AuthCacheTTLSeconds:    120,
		RateLimitAttempts:      3,
		RateLimitWindowSeconds: 30,
		LogMech:                "LDAP",
		MapStrategy:            "transform:sam",
		FallbackPrincipal:      "svcuser",
		ApplicationName:        "dbproxy",
	}

	if got := s.MiddlewareConfig(); got.Mode != auth.ModeBasic {
		t.Errorf("middleware mode = %q", got.Mode)
	}
	if got := s.CacheConfig(); got.TTL != 2*time.Minute {
		t.Errorf("cache ttl = %v, want 2m", got.TTL)
	}
	if got := s.LimiterConfig(); got.MaxAttempts != 3 || got.Window != 30*time.Second {
		t.Errorf("limiter = %+v", got)
	}
	if got := s.ValidatorConfig(); got.DefaultLogMech != "LDAP" || got.MapStrategy != "transform:sam" || got.FallbackPrincipal != "svcuser" {
		t.Errorf("validator config = %+v", got)
	}
	if got := s.BuilderConfig(); got.Application != "dbproxy" {
		t.Errorf("builder application = %q", got.Application)
	}
}

func TestSettings_ProberConfig(t *testing.T) {
	s := &Settings{
		DatabaseURI:         "teradata://db.example:1125/warehouse",
		ProbeTimeoutSeconds: 3,
	}

	cfg, err := s.ProberConfig()
	if err != nil {
		t.Fatalf("ProberConfig: %v", err)
	}
	if cfg.Driver != "teradata" {
		t.Errorf("Driver = %q", cfg.Driver)
	}
	if cfg.Host != "db.example" || cfg.Port != 1125 {
		t.Errorf("endpoint = (%q, %d)", cfg.Host, cfg.Port)
	}
	if cfg.Database != "warehouse" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestSettings_ProberConfig_NoPort(t *testing.T) {
	s := &Settings{DatabaseURI: "teradata://db.example/dbc"}

	cfg, err := s.ProberConfig()
	if err != nil {
		t.Fatalf("ProberConfig: %v", err)
	}
	// The prober constructor fills the default port.
	if cfg.Port != 0 {
		t.Errorf("Port = %d, want 0 from URI without port", cfg.Port)
	}
}

func TestSettings_ProberConfig_EmptyURI(t *testing.T) {
	s := &Settings{ProbeTimeoutSeconds: 5}

	cfg, err := s.ProberConfig()
	if err != nil {
		t.Fatalf("ProberConfig: %v", err)
	}
	if cfg.Host != "" || cfg.Driver != "" {
		t.Errorf("cfg = %+v, want zero endpoint", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestSettings_ObserveConfig(t *testing.T) {
	s := &Settings{
		ApplicationName: "dbproxy",
		LogLevel:        "debug",
		TracingExporter: "stdout",
		MetricsExporter: "none",
	}

	cfg := s.ObserveConfig()

	if cfg.ServiceName != "dbproxy" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Exporter != "stdout" {
		t.Errorf("tracing = %+v", cfg.Tracing)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics enabled with exporter none")
	}
	if !cfg.Logging.Enabled || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}
