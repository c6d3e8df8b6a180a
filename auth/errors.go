package auth

import "errors"

// Sentinel errors for authentication.
var (
	// ErrMissingCredentials indicates no credential was supplied where one is required.
	ErrMissingCredentials = errors.New("auth: missing credentials")

	// ErrInvalidCredentials indicates the credential was checked and rejected.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUnsupportedScheme indicates an Authorization scheme the active mode does not accept.
	ErrUnsupportedScheme = errors.New("auth: unsupported authorization scheme")

	// ErrInvalidUsername indicates a Basic credential with an empty or undecodable username.
	ErrInvalidUsername = errors.New("auth: invalid username")

	// ErrTokenMalformed indicates a credential that could not be decoded or parsed.
	ErrTokenMalformed = errors.New("auth: token malformed")

	// ErrRateLimited indicates the failed-attempt ceiling was reached for the identity.
	ErrRateLimited = errors.New("auth: too many failed attempts")

	// ErrPermissionDenied is the single fail-closed rejection outcome surfaced
	// to transports. Validator errors are wrapped into it 1:1.
	ErrPermissionDenied = errors.New("auth: permission denied")
)
