package health

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jonwraymond/sessionband/auth"
	"github.com/jonwraymond/sessionband/session"
)

// DatabaseChecker pings the shared database pool.
type DatabaseChecker struct {
	db *sqlx.DB
}

// NewDatabaseChecker creates a checker over the shared pool.
func NewDatabaseChecker(db *sqlx.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db}
}

func (c *DatabaseChecker) Name() string { return "database" }

// Check pings the pool and reports its connection counts.
func (c *DatabaseChecker) Check(ctx context.Context) Result {
	if c.db == nil {
		return Unhealthy("pool not configured", nil)
	}
	if err := c.db.PingContext(ctx); err != nil {
		return Unhealthy("ping failed", err)
	}

	stats := c.db.Stats()
	r := Healthy("pool reachable").WithDetails(map[string]any{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
	})
	// Saturation is worth surfacing before it becomes an outage.
	if stats.MaxOpenConnections > 0 && stats.InUse == stats.MaxOpenConnections {
		r.Status = StatusDegraded
		r.Message = "pool saturated"
	}
	return r
}

// RegistryChecker watches the session registry size.
type RegistryChecker struct {
	registry *session.Registry

	// DegradedAt marks the session count above which the service reports
	// degraded. Zero disables the threshold.
	DegradedAt int
}

// NewRegistryChecker creates a checker over the session registry.
func NewRegistryChecker(registry *session.Registry, degradedAt int) *RegistryChecker {
	return &RegistryChecker{registry: registry, DegradedAt: degradedAt}
}

func (c *RegistryChecker) Name() string { return "sessions" }

func (c *RegistryChecker) Check(ctx context.Context) Result {
	if c.registry == nil {
		return Unhealthy("registry not configured", nil)
	}
	count := c.registry.Len()
	r := Healthy("registry available").WithDetails(map[string]any{"sessions": count})
	if c.DegradedAt > 0 && count > c.DegradedAt {
		r.Status = StatusDegraded
		r.Message = "session count above threshold"
	}
	return r
}

// CacheChecker reports the secure auth cache size.
type CacheChecker struct {
	cache *auth.SecureCache
}

// NewCacheChecker creates a checker over the secure auth cache.
func NewCacheChecker(cache *auth.SecureCache) *CacheChecker {
	return &CacheChecker{cache: cache}
}

func (c *CacheChecker) Name() string { return "auth_cache" }

func (c *CacheChecker) Check(ctx context.Context) Result {
	if c.cache == nil {
		return Unhealthy("cache not configured", nil)
	}
	return Healthy("cache available").WithDetails(map[string]any{
		"entries": c.cache.Len(),
	})
}
