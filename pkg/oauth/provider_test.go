package oauth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authkit/pkg/oauth"
)

func testProvider(t *testing.T, opts ...oauth.Option) *oauth.Provider {
	t.Helper()
	base := []oauth.Option{
		oauth.WithDefaultScopes("email", "profile"),
	}
	return oauth.New("acme", "Acme", oauth.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://app.example.com/callback/acme",
	}, oauth2.Endpoint{
		AuthURL:  "https://auth.acme.test/authorize",
		TokenURL: "https://auth.acme.test/token",
	}, append(base, opts...)...)
}

func TestCreateAuthorizationURL(t *testing.T) {
	t.Parallel()

	t.Run("carries client id, redirect, state and scopes", func(t *testing.T) {
		t.Parallel()

		p := testProvider(t)
		u, err := p.CreateAuthorizationURL(oauth.AuthorizationURLParams{State: "state-123"})
		require.NoError(t, err)

		assert.Equal(t, "auth.acme.test", u.Host)
		assert.Equal(t, "/authorize", u.Path)

		q := u.Query()
		assert.Equal(t, "client-id", q.Get("client_id"))
		assert.Equal(t, "https://app.example.com/callback/acme", q.Get("redirect_uri"))
		assert.Equal(t, "code", q.Get("response_type"))
		assert.Equal(t, "state-123", q.Get("state"))
		assert.Equal(t, "email profile", q.Get("scope"))
	})

	t.Run("deterministic except for state", func(t *testing.T) {
		t.Parallel()

		p := testProvider(t)
		a, err := p.CreateAuthorizationURL(oauth.AuthorizationURLParams{State: "one"})
		require.NoError(t, err)
		b, err := p.CreateAuthorizationURL(oauth.AuthorizationURLParams{State: "two"})
		require.NoError(t, err)

		qa, qb := a.Query(), b.Query()
		assert.Equal(t, "one", qa.Get("state"))
		assert.Equal(t, "two", qb.Get("state"))

		qa.Del("state")
		qb.Del("state")
		assert.Equal(t, qa, qb)
	})

	t.Run("caller scopes append after defaults, duplicates preserved", func(t *testing.T) {
		t.Parallel()

		p := testProvider(t)
		u, err := p.CreateAuthorizationURL(oauth.AuthorizationURLParams{
			State:  "s",
			Scopes: []string{"email", "calendar"},
		})
		require.NoError(t, err)

		assert.Equal(t, "email profile email calendar", u.Query().Get("scope"))
	})

	t.Run("per-call redirect override", func(t *testing.T) {
		t.Parallel()

		p := testProvider(t)
		u, err := p.CreateAuthorizationURL(oauth.AuthorizationURLParams{
			State:       "s",
			RedirectURI: "https://other.example.com/cb",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://other.example.com/cb", u.Query().Get("redirect_uri"))
	})
}

func TestValidateAuthorizationCode(t *testing.T) {
	t.Parallel()

	t.Run("exchanges the code for a token", func(t *testing.T) {
		t.Parallel()

		var gotCode string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotCode = r.Form.Get("code")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"token-abc","token_type":"bearer"}`))
		}))
		defer srv.Close()

		p := oauth.New("acme", "Acme", oauth.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "https://app.example.com/callback/acme",
		}, oauth2.Endpoint{
			AuthURL:  srv.URL + "/authorize",
			TokenURL: srv.URL + "/token",
		})

		token, err := p.ValidateAuthorizationCode(context.Background(), oauth.ValidateCodeParams{Code: "code-1"})
		require.NoError(t, err)
		assert.Equal(t, "token-abc", token.AccessToken)
		assert.Equal(t, "code-1", gotCode)
	})

	t.Run("provider rejection maps to ExchangeError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		p := oauth.New("acme", "Acme", oauth.Config{ClientID: "c", ClientSecret: "s"}, oauth2.Endpoint{
			AuthURL:  srv.URL + "/authorize",
			TokenURL: srv.URL + "/token",
		})

		_, err := p.ValidateAuthorizationCode(context.Background(), oauth.ValidateCodeParams{Code: "bad"})
		var exchErr *oauth.ExchangeError
		require.ErrorAs(t, err, &exchErr)
		assert.Equal(t, "acme", exchErr.Provider)
	})
}

func TestGetUserInfo(t *testing.T) {
	t.Parallel()

	token := &oauth2.Token{AccessToken: "token-abc"}

	t.Run("fetches, normalizes and keeps the raw payload", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"1","name":"N","email":"e@x.y"}`))
		}))
		defer srv.Close()

		p := testProvider(t,
			oauth.WithUserInfoURL(srv.URL),
			oauth.WithNormalizer(func(raw map[string]any) oauth.Profile {
				return oauth.Profile{
					ID:    raw["id"].(string),
					Name:  raw["name"].(string),
					Email: raw["email"].(string),
				}
			}),
		)

		info, err := p.GetUserInfo(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, oauth.Profile{ID: "1", Name: "N", Email: "e@x.y"}, info.User)
		assert.Equal(t, "1", info.Raw["id"])
	})

	t.Run("requested fields pass through as query parameter", func(t *testing.T) {
		t.Parallel()

		var gotFields string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotFields = r.URL.Query().Get("fields")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		p := testProvider(t, oauth.WithUserInfoURL(srv.URL), oauth.WithFields("id", "name", "picture"))
		_, err := p.GetUserInfo(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "id,name,picture", gotFields)
	})

	t.Run("caller profile mapping wins field by field", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"1","name":"Original"}`))
		}))
		defer srv.Close()

		p := testProvider(t,
			oauth.WithUserInfoURL(srv.URL),
			oauth.WithNormalizer(func(raw map[string]any) oauth.Profile {
				return oauth.Profile{ID: raw["id"].(string), Name: raw["name"].(string)}
			}),
			oauth.WithMapProfileToUser(func(raw map[string]any) map[string]any {
				return map[string]any{"name": "Override"}
			}),
		)

		info, err := p.GetUserInfo(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "Override", info.User.Name)
		assert.Equal(t, "1", info.User.ID, "fields the mapping does not name survive")
	})

	t.Run("non-200 profile response maps to ExchangeError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		p := testProvider(t, oauth.WithUserInfoURL(srv.URL))
		_, err := p.GetUserInfo(context.Background(), token)
		var exchErr *oauth.ExchangeError
		require.ErrorAs(t, err, &exchErr)
	})

	t.Run("no user info endpoint configured", func(t *testing.T) {
		t.Parallel()

		p := testProvider(t)
		_, err := p.GetUserInfo(context.Background(), token)
		require.ErrorIs(t, err, oauth.ErrNoUserInfoEndpoint)
	})

	t.Run("custom retrieval replaces the whole step", func(t *testing.T) {
		t.Parallel()

		p := testProvider(t, oauth.WithGetUserInfo(func(ctx context.Context, tok *oauth2.Token) (*oauth.UserInfo, error) {
			return &oauth.UserInfo{User: oauth.Profile{ID: "custom"}}, nil
		}))

		info, err := p.GetUserInfo(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "custom", info.User.ID)
	})
}

func TestFacebook(t *testing.T) {
	t.Parallel()

	cfg := oauth.FacebookConfig{
		ClientID:     "fb-client",
		ClientSecret: "fb-secret",
		RedirectURI:  "https://app.example.com/callback/facebook",
	}

	t.Run("identity and default scopes", func(t *testing.T) {
		t.Parallel()

		p := oauth.Facebook(cfg)
		assert.Equal(t, oauth.ProviderFacebook, p.ID())
		assert.Equal(t, "Facebook", p.DisplayName())

		u, err := p.CreateAuthorizationURL(oauth.AuthorizationURLParams{State: "s"})
		require.NoError(t, err)
		assert.Equal(t, "email public_profile", u.Query().Get("scope"))
		assert.Equal(t, "www.facebook.com", u.Host)
	})

	t.Run("normalizes a Graph API profile", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "1",
				"name": "N",
				"email": "e@x.y",
				"email_verified": true,
				"picture": {"data": {"url": "https://cdn.example.com/p.jpg"}}
			}`))
		}))
		defer srv.Close()

		p := oauth.Facebook(cfg, oauth.WithUserInfoURL(srv.URL))
		info, err := p.GetUserInfo(context.Background(), &oauth2.Token{AccessToken: "t"})
		require.NoError(t, err)

		assert.Equal(t, oauth.Profile{
			ID:            "1",
			Name:          "N",
			Email:         "e@x.y",
			Image:         "https://cdn.example.com/p.jpg",
			EmailVerified: true,
		}, info.User)
	})

	t.Run("caller options override the defaults", func(t *testing.T) {
		t.Parallel()

		p := oauth.Facebook(cfg, oauth.WithDefaultScopes("email"))
		u, err := p.CreateAuthorizationURL(oauth.AuthorizationURLParams{State: "s"})
		require.NoError(t, err)
		assert.Equal(t, "email", u.Query().Get("scope"))
	})
}

func TestExchangeError(t *testing.T) {
	t.Parallel()

	inner := assert.AnError
	err := &oauth.ExchangeError{Provider: "acme", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "acme")
}
