package auth

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authkit/endpoint"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/oauth"
	"github.com/dmitrymomot/authkit/pkg/statestore"
)

// stateCookieName carries the signed state token between the start of a
// login flow and the provider callback.
const stateCookieName = "authkit_oauth_state"

// Service wires OAuth2 provider adapters into login-flow endpoints: starting
// an authorization request and handling the provider callback.
type Service struct {
	providers map[string]*oauth.Provider
	states    statestore.Store
	log       *slog.Logger
	stateTTL  time.Duration
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger configures the logger. Discards by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStateStore replaces the default in-memory authorization state store.
func WithStateStore(store statestore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.states = store
		}
	}
}

// WithStateTTL configures how long a started login flow stays redeemable.
func WithStateTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.stateTTL = ttl
		}
	}
}

// NewService constructs the login-flow service for the given providers.
// Defaults: in-memory state store, 10 minute state TTL, discarded logs.
func NewService(providers []*oauth.Provider, opts ...Option) *Service {
	s := &Service{
		providers: make(map[string]*oauth.Provider, len(providers)),
		states:    statestore.NewMemory(),
		log:       logger.Discard(),
		stateTTL:  10 * time.Minute,
	}
	for _, p := range providers {
		s.providers[p.ID()] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds the login-flow endpoints to a router.
func (s *Service) Register(rt *endpoint.Router) error {
	return rt.Register(s.Endpoints()...)
}

// generateState produces the opaque state token binding the browser session
// to the authorization request.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
