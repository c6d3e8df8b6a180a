// Package queryband serializes request and session attribution into the
// bounded key=value audit string the backing data store honors. The string
// is set on the database session before a tool's SQL executes and is the
// main wire-visible contract toward the store's audit tooling: values hold
// only alphanumerics, underscore, and dash, with semicolon exclusively as
// the pair delimiter.
package queryband
