// Package health exposes liveness and readiness checks for the service's
// stateful components: the shared database pool, the session registry, and
// the secure auth cache. Checks are aggregated into one overall status and
// served over HTTP for orchestrator probes.
package health
