package statestore

import (
	"context"
	"errors"
	"time"
)

// ErrStateNotFound is returned when a state token does not exist, has
// expired, or was already consumed. Callers treat all three identically:
// the authorization request is not replayable.
var ErrStateNotFound = errors.New("statestore: state not found or already consumed")

// State captures one in-flight authorization request: created when a login
// flow starts, consumed exactly once when the matching callback validates
// the authorization code.
type State struct {
	Provider    string    `json:"provider"`
	Scopes      []string  `json:"scopes,omitempty"`
	RedirectURI string    `json:"redirect_uri,omitempty"`
	Nonce       string    `json:"nonce,omitempty"`
	Verifier    string    `json:"verifier,omitempty"` // PKCE code verifier, optional
	ExpiresAt   time.Time `json:"expires_at"`
}

// Store persists authorization request state keyed by the opaque state token.
// Consume must be one-shot: a second Consume for the same token returns
// ErrStateNotFound, which is what prevents authorization code replay.
type Store interface {
	Save(ctx context.Context, token string, state State, ttl time.Duration) error
	Consume(ctx context.Context, token string) (State, error)
}
