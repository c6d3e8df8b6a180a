// Package observe provides the observability primitives for the session and
// audit layer: structured JSON-line logging, OpenTelemetry tracing around
// credential probes and query execution, and call metrics.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Consumers inject the observer's logger and tracer
// into the auth, session, and audit components.
package observe
