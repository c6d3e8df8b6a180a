// Package session tracks logical client sessions: identity extracted from
// request headers plus connection metadata, stored in an in-memory registry
// for the process lifetime and published into request-scoped context so
// same-call code can retrieve the current session without re-deriving it.
package session
