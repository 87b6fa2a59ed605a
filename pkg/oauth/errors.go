package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrNoUserInfoEndpoint is returned when a provider has neither a user
	// info URL nor a custom GetUserInfo function.
	ErrNoUserInfoEndpoint = errors.New("oauth: provider has no user info endpoint")
)

// ExchangeError wraps any token-exchange or profile-fetch failure at the
// provider boundary. Transport errors and non-2xx provider responses both map
// here; raw transport exceptions never cross the adapter.
type ExchangeError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ExchangeError) Error() string {
	return fmt.Sprintf("oauth: %s exchange failed: %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ExchangeError) Unwrap() error {
	return e.Err
}
