// Package oauth implements generic OAuth2 provider adapters for the
// three-legged authorization-code flow on top of golang.org/x/oauth2.
//
// A Provider is parameterized by its endpoints, default scopes and a
// raw-profile normalizer, and exposes three operations:
//
//   - CreateAuthorizationURL builds the provider's authorization URL with the
//     opaque state and the scope list (provider defaults first, caller extras
//     appended, duplicates preserved),
//   - ValidateAuthorizationCode exchanges the callback code for a token,
//     mapping every failure to a typed *ExchangeError,
//   - GetUserInfo fetches the raw profile and normalizes it to the canonical
//     Profile shape, with an optional caller mapping applied last.
//
// Concrete providers (e.g. Facebook) are thin constructors wiring their
// endpoint URLs, default profile fields, and normalizer into New.
package oauth
