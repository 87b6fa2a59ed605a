package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/endpoint"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/oauth"
	"github.com/dmitrymomot/authkit/pkg/statestore"
)

// Endpoints returns the login-flow endpoints for registration on a router.
func (s *Service) Endpoints() []*endpoint.Endpoint {
	return []*endpoint.Endpoint{
		s.signInSocialEndpoint(),
		s.callbackEndpoint(),
	}
}

type signInSocialRequest struct {
	Provider    string   `json:"provider"`
	CallbackURL string   `json:"callbackURL,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
}

// Validate implements endpoint.Validatable.
func (r signInSocialRequest) Validate() error {
	verr := endpoint.NewValidationError()
	if r.Provider == "" {
		verr.Add("provider", "provider is required")
	}
	if verr.IsEmpty() {
		return nil
	}
	return verr
}

type signInSocialResponse struct {
	URL string `json:"url"`
}

// signInSocialEndpoint starts a login flow: it binds the browser to a fresh
// state token via a signed cookie, persists the authorization request state,
// and hands back the provider's authorization URL.
func (s *Service) signInSocialEndpoint() *endpoint.Endpoint {
	return &endpoint.Endpoint{
		Name:   "signInSocial",
		Method: http.MethodPost,
		Path:   "/sign-in/social",
		Body:   func() any { return &signInSocialRequest{} },
		Metadata: endpoint.Metadata{
			OperationID: "signInSocial",
			Description: "Start an OAuth2 authorization-code login with a social provider",
		},
		Handler: func(c *endpoint.Context) (*endpoint.Result, error) {
			req := c.Body().(*signInSocialRequest)

			provider, ok := s.providers[req.Provider]
			if !ok {
				return nil, endpoint.NewError(http.StatusBadRequest, "unknown_provider", fmt.Sprintf("provider %q is not configured", req.Provider))
			}

			state, err := generateState()
			if err != nil {
				return nil, fmt.Errorf("generate state: %w", err)
			}

			if err := s.states.Save(c, state, statestore.State{
				Provider:    provider.ID(),
				Scopes:      req.Scopes,
				RedirectURI: req.CallbackURL,
				Nonce:       uuid.NewString(),
			}, s.stateTTL); err != nil {
				return nil, fmt.Errorf("save authorization state: %w", err)
			}

			if err := c.SetSignedCookie(stateCookieName, state, cookie.WithMaxAge(int(s.stateTTL.Seconds()))); err != nil {
				return nil, fmt.Errorf("set state cookie: %w", err)
			}

			u, err := provider.CreateAuthorizationURL(oauth.AuthorizationURLParams{
				State:  state,
				Scopes: req.Scopes,
			})
			if err != nil {
				return nil, fmt.Errorf("build authorization url: %w", err)
			}

			s.log.LogAttrs(c, slog.LevelInfo, "login flow started",
				logger.Provider(provider.ID()),
				logger.Component("auth"),
				logger.Event("sign_in_social"),
			)

			return c.JSON(signInSocialResponse{URL: u.String()}), nil
		},
	}
}

type callbackRequest struct {
	Code  string `query:"code"`
	State string `query:"state"`
	Error string `query:"error"`
}

type callbackResponse struct {
	User oauth.Profile `json:"user"`
}

// callbackEndpoint finishes a login flow: it checks the signed state cookie
// against the query state, consumes the stored authorization request exactly
// once, exchanges the code and fetches the normalized profile. The response
// is either a redirect to the requested callback URL or the user as JSON.
func (s *Service) callbackEndpoint() *endpoint.Endpoint {
	return &endpoint.Endpoint{
		Name:   "oauthCallback",
		Method: http.MethodGet,
		Path:   "/callback/{provider}",
		Query:  func() any { return &callbackRequest{} },
		Metadata: endpoint.Metadata{
			OperationID: "oauthCallback",
			Description: "Handle the OAuth2 provider callback and complete the login",
		},
		Handler: func(c *endpoint.Context) (*endpoint.Result, error) {
			providerID := c.Param("provider")
			provider, ok := s.providers[providerID]
			if !ok {
				return nil, endpoint.NewError(http.StatusNotFound, "unknown_provider", fmt.Sprintf("provider %q is not configured", providerID))
			}

			q := c.Query().(*callbackRequest)

			if q.Error != "" {
				return nil, endpoint.NewError(http.StatusUnauthorized, "provider_denied", "provider returned error: "+q.Error)
			}
			if q.Code == "" || q.State == "" {
				return nil, endpoint.NewError(http.StatusBadRequest, "invalid_request", "code and state are required")
			}

			cookieState, err := c.SignedCookie(stateCookieName)
			if err != nil || cookieState != q.State {
				return nil, endpoint.NewError(http.StatusUnauthorized, "invalid_state", "state cookie missing or mismatched")
			}

			// One-shot consumption is the replay guard: a second callback
			// with the same state fails here.
			st, err := s.states.Consume(c, q.State)
			if err != nil {
				if errors.Is(err, statestore.ErrStateNotFound) {
					return nil, endpoint.NewError(http.StatusUnauthorized, "invalid_state", "state expired or already used")
				}
				return nil, fmt.Errorf("consume authorization state: %w", err)
			}
			if st.Provider != providerID {
				return nil, endpoint.NewError(http.StatusUnauthorized, "invalid_state", "state was issued for another provider")
			}

			c.ClearCookie(stateCookieName)

			token, err := provider.ValidateAuthorizationCode(c, oauth.ValidateCodeParams{Code: q.Code})
			if err != nil {
				s.log.LogAttrs(c, slog.LevelWarn, "authorization code rejected",
					logger.Provider(providerID),
					logger.Error(err),
					logger.Component("auth"),
				)
				return nil, endpoint.NewError(http.StatusUnauthorized, "invalid_code", "authorization code was rejected by the provider")
			}

			info, err := provider.GetUserInfo(c, token)
			if err != nil || info == nil {
				s.log.LogAttrs(c, slog.LevelError, "profile fetch failed",
					logger.Provider(providerID),
					logger.Error(err),
					logger.Component("auth"),
				)
				return nil, endpoint.NewError(http.StatusBadGateway, "profile_fetch_failed", "could not fetch user profile from provider")
			}

			s.log.LogAttrs(c, slog.LevelInfo, "login completed",
				logger.Provider(providerID),
				logger.Component("auth"),
				logger.Event("oauth_callback"),
			)

			if st.RedirectURI != "" {
				return nil, endpoint.NewRedirectError(st.RedirectURI)
			}
			return c.JSON(callbackResponse{User: info.User}), nil
		},
	}
}
