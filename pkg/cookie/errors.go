package cookie

import "errors"

var (
	// ErrNoSecret is returned when a manager is created without any usable secret.
	ErrNoSecret = errors.New("cookie: at least one secret is required")
	// ErrSecretTooShort is returned when a secret is shorter than the required minimum.
	ErrSecretTooShort = errors.New("cookie: secret too short")
	// ErrCookieNotFound is returned when the request carries no cookie with the given name.
	ErrCookieNotFound = errors.New("cookie: not found")
	// ErrInvalidFormat is returned when a signed value is malformed.
	ErrInvalidFormat = errors.New("cookie: invalid signed value format")
	// ErrInvalidSignature is returned when a signed value fails verification against all secrets.
	ErrInvalidSignature = errors.New("cookie: invalid signature")
)
