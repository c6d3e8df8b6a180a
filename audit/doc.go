// Package audit brackets database calls with start/complete bookkeeping for
// audit logging. Parameters are redacted before they reach any log record,
// and completed traces live no longer than their log line. Tracing here is
// best-effort observability, never correctness-critical: failures are
// swallowed and logged, not surfaced to callers.
package audit
