package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records authentication and call execution metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one database call with duration and error status.
	RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error)

	// RecordAuthAttempt records one credential validation outcome
	// ("success", "invalid", "rate_limited", "malformed").
	RecordAuthAttempt(ctx context.Context, scheme, outcome string)

	// RecordCacheLookup records one secure-cache lookup.
	RecordCacheLookup(ctx context.Context, hit bool)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	callTotal    metric.Int64Counter
	callErrors   metric.Int64Counter
	callDuration metric.Float64Histogram
	authAttempts metric.Int64Counter
	cacheLookups metric.Int64Counter
}

// NewMetrics creates a Metrics instance over the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	callTotal, err := meter.Int64Counter(
		"call.exec.total",
		metric.WithDescription("Total number of database calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	callErrors, err := meter.Int64Counter(
		"call.exec.errors",
		metric.WithDescription("Total number of failed database calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	callDuration, err := meter.Float64Histogram(
		"call.exec.duration_ms",
		metric.WithDescription("Database call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	authAttempts, err := meter.Int64Counter(
		"auth.attempts.total",
		metric.WithDescription("Credential validation attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"auth.cache.lookups",
		metric.WithDescription("Secure auth cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		callTotal:    callTotal,
		callErrors:   callErrors,
		callDuration: callDuration,
		authAttempts: authAttempts,
		cacheLookups: cacheLookups,
	}, nil
}

// RecordCall records metrics for one database call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("call.tool", meta.Tool))

	m.callTotal.Add(ctx, 1, opt)
	if err != nil {
		m.callErrors.Add(ctx, 1, opt)
	}
	m.callDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordAuthAttempt records one credential validation outcome.
func (m *metricsImpl) RecordAuthAttempt(ctx context.Context, scheme, outcome string) {
	m.authAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("auth.scheme", scheme),
		attribute.String("auth.outcome", outcome),
	))
}

// RecordCacheLookup records one secure-cache lookup.
func (m *metricsImpl) RecordCacheLookup(ctx context.Context, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cache.hit", hit)))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordCall(context.Context, CallMeta, time.Duration, error) {}
func (noopMetrics) RecordAuthAttempt(context.Context, string, string)         {}
func (noopMetrics) RecordCacheLookup(context.Context, bool)                   {}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics {
	return noopMetrics{}
}
