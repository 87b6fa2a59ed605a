package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Config holds the caller-facing construction parameters shared by every
// provider: client credentials, the default redirect URI, and extra scopes
// appended after the provider defaults.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
}

// GetUserInfoFunc fetches and normalizes a user profile with an access token.
type GetUserInfoFunc func(ctx context.Context, token *oauth2.Token) (*UserInfo, error)

// Provider performs the provider-agnostic halves of the authorization-code
// flow: authorization URL construction and authorization-code validation,
// plus profile retrieval and normalization. Instances are immutable after
// construction and safe for concurrent use.
type Provider struct {
	id           string
	displayName  string
	clientID     string
	clientSecret string
	redirectURI  string
	extraScopes  []string

	endpoint      oauth2.Endpoint
	defaultScopes []string
	fields        []string
	userInfoURL   string
	httpClient    *http.Client
	normalize     func(raw map[string]any) Profile
	getUserInfo   GetUserInfoFunc
	mapProfile    func(raw map[string]any) map[string]any
}

// Option configures a Provider during construction. Provider constructors
// (e.g. Facebook) set their defaults through the same options callers use,
// so caller options always win.
type Option func(*Provider)

// WithDefaultScopes sets the provider's default scopes, requested before any
// caller extras.
func WithDefaultScopes(scopes ...string) Option {
	return func(p *Provider) { p.defaultScopes = scopes }
}

// WithFields sets the profile fields requested from the user info endpoint.
func WithFields(fields ...string) Option {
	return func(p *Provider) {
		if len(fields) > 0 {
			p.fields = fields
		}
	}
}

// WithUserInfoURL overrides the user info endpoint. Mostly useful in tests.
func WithUserInfoURL(u string) Option {
	return func(p *Provider) {
		if u != "" {
			p.userInfoURL = u
		}
	}
}

// WithEndpoint overrides the authorization and token endpoint URLs.
func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(p *Provider) { p.endpoint = ep }
}

// WithHTTPClient sets the client used for token exchange and profile fetch.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithNormalizer sets the raw-profile-to-canonical mapping.
func WithNormalizer(fn func(raw map[string]any) Profile) Option {
	return func(p *Provider) {
		if fn != nil {
			p.normalize = fn
		}
	}
}

// WithGetUserInfo replaces the entire profile retrieval step.
func WithGetUserInfo(fn GetUserInfoFunc) Option {
	return func(p *Provider) { p.getUserInfo = fn }
}

// WithMapProfileToUser sets a caller mapping applied after normalization;
// its returned fields win over the defaults, field by field.
func WithMapProfileToUser(fn func(raw map[string]any) map[string]any) Option {
	return func(p *Provider) { p.mapProfile = fn }
}

// New constructs a provider adapter from an id, a display name, caller
// config, and the provider's OAuth2 endpoints.
func New(id, displayName string, cfg Config, endpoint oauth2.Endpoint, opts ...Option) *Provider {
	p := &Provider{
		id:           id,
		displayName:  displayName,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		extraScopes:  cfg.Scopes,
		endpoint:     endpoint,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		normalize:    func(map[string]any) Profile { return Profile{} },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the provider identifier, e.g. "facebook".
func (p *Provider) ID() string {
	return p.id
}

// DisplayName returns the human-readable provider name.
func (p *Provider) DisplayName() string {
	return p.displayName
}

// AuthorizationURLParams carries the per-request inputs of
// CreateAuthorizationURL.
type AuthorizationURLParams struct {
	State       string
	Scopes      []string // appended after provider defaults and config extras
	RedirectURI string   // overrides the configured redirect URI when set
}

// CreateAuthorizationURL builds the provider's authorization endpoint URL
// with client id, redirect URI, response type, scope list and the opaque
// state value. The scope list is provider defaults first, then config extras,
// then caller extras; duplicate scope values are preserved literally, which
// providers tolerate.
func (p *Provider) CreateAuthorizationURL(params AuthorizationURLParams) (*url.URL, error) {
	conf := p.oauthConfig(params.RedirectURI, params.Scopes)

	u, err := url.Parse(conf.AuthCodeURL(params.State))
	if err != nil {
		return nil, fmt.Errorf("oauth: build authorization url for %s: %w", p.id, err)
	}
	return u, nil
}

// ValidateCodeParams carries the per-request inputs of
// ValidateAuthorizationCode.
type ValidateCodeParams struct {
	Code        string
	RedirectURI string
}

// ValidateAuthorizationCode exchanges an authorization code for a token at
// the provider's token endpoint. Transport failures and non-2xx provider
// responses both map to *ExchangeError.
func (p *Provider) ValidateAuthorizationCode(ctx context.Context, params ValidateCodeParams) (*oauth2.Token, error) {
	conf := p.oauthConfig(params.RedirectURI, nil)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := conf.Exchange(ctx, params.Code)
	if err != nil {
		return nil, &ExchangeError{Provider: p.id, Err: err}
	}
	return token, nil
}

// GetUserInfo fetches the user's profile with the access token and maps it to
// the canonical shape, applying the caller's MapProfileToUser override last.
func (p *Provider) GetUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	if p.getUserInfo != nil {
		return p.getUserInfo(ctx, token)
	}
	if p.userInfoURL == "" {
		return nil, ErrNoUserInfoEndpoint
	}

	raw, err := p.fetchProfile(ctx, token)
	if err != nil {
		return nil, &ExchangeError{Provider: p.id, Err: err}
	}

	profile := p.normalize(raw)
	if p.mapProfile != nil {
		profile = applyOverrides(profile, p.mapProfile(raw))
	}

	return &UserInfo{User: profile, Raw: raw}, nil
}

// oauthConfig assembles the per-call oauth2.Config. callScopes are appended
// after provider defaults and config extras without deduplication.
func (p *Provider) oauthConfig(redirectURI string, callScopes []string) *oauth2.Config {
	scopes := make([]string, 0, len(p.defaultScopes)+len(p.extraScopes)+len(callScopes))
	scopes = append(scopes, p.defaultScopes...)
	scopes = append(scopes, p.extraScopes...)
	scopes = append(scopes, callScopes...)

	if redirectURI == "" {
		redirectURI = p.redirectURI
	}

	return &oauth2.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
		Endpoint:     p.endpoint,
	}
}

func (p *Provider) fetchProfile(ctx context.Context, token *oauth2.Token) (map[string]any, error) {
	u := p.userInfoURL
	if len(p.fields) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + "fields=" + url.QueryEscape(strings.Join(p.fields, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info endpoint returned status %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
