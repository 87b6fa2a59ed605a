package oauth

import (
	"golang.org/x/oauth2/facebook"
)

// ProviderFacebook is the Facebook provider identifier.
const ProviderFacebook = "facebook"

const facebookUserInfoURL = "https://graph.facebook.com/me"

// defaultFacebookFields are the profile fields requested from the Graph API
// when the caller does not override them.
var defaultFacebookFields = []string{"id", "name", "email", "picture"}

// FacebookConfig holds configuration for the Facebook OAuth provider.
type FacebookConfig struct {
	ClientID     string   `env:"FACEBOOK_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"FACEBOOK_OAUTH_CLIENT_SECRET,required"`
	RedirectURI  string   `env:"FACEBOOK_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"FACEBOOK_OAUTH_SCOPES" envSeparator:","`
	Fields       []string `env:"FACEBOOK_OAUTH_FIELDS" envSeparator:","`
}

// Facebook creates the Facebook provider adapter. Default scopes are
// "email" and "public_profile"; config scopes append after them.
func Facebook(cfg FacebookConfig, opts ...Option) *Provider {
	base := []Option{
		WithDefaultScopes("email", "public_profile"),
		WithFields(defaultFacebookFields...),
		WithUserInfoURL(facebookUserInfoURL),
		WithNormalizer(normalizeFacebookProfile),
		WithFields(cfg.Fields...),
	}

	return New(ProviderFacebook, "Facebook", Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		Scopes:       cfg.Scopes,
	}, facebook.Endpoint, append(base, opts...)...)
}

// normalizeFacebookProfile maps the Graph API payload to the canonical
// profile shape. The avatar URL nests under picture.data.url.
func normalizeFacebookProfile(raw map[string]any) Profile {
	p := Profile{
		ID:            stringField(raw, "id"),
		Name:          stringField(raw, "name"),
		Email:         stringField(raw, "email"),
		EmailVerified: boolField(raw, "email_verified"),
	}

	if picture, ok := raw["picture"].(map[string]any); ok {
		if data, ok := picture["data"].(map[string]any); ok {
			p.Image = stringField(data, "url")
		}
	}

	return p
}
