// Package auth provides the login-flow service: endpoints that drive the
// three-legged OAuth2 authorization-code flow through registered provider
// adapters.
//
// POST /sign-in/social starts a flow: it saves the authorization request
// state, binds the browser with a signed state cookie, and returns the
// provider's authorization URL. GET /callback/{provider} completes it:
// the state cookie and stored state are checked (one-shot, replay-safe),
// the code is exchanged, and the normalized profile is returned or the
// caller is redirected to the requested callback URL.
//
// Session persistence is intentionally out of scope; callers act on the
// returned profile.
package auth
