package endpoint

import (
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/pkg/cookie"
)

// Context is the per-request execution state threaded through hooks and the
// endpoint handler. It carries the validated inputs, the incoming headers, a
// buffer of pending cookies, and the in-flight outcome visible to after-hooks.
//
// Context implements context.Context by delegating to the request's context,
// so it can be passed directly to blocking collaborator calls.
type Context struct {
	r       *http.Request
	path    string
	method  string
	query   any
	body    any
	header  http.Header
	values  map[string]any
	cookies []*http.Cookie
	signer  *cookie.Manager

	returned Outcome
	inAfter  bool
}

// Request returns the raw inbound request. It must not be mutated.
func (c *Context) Request() *http.Request {
	return c.r
}

// Path returns the endpoint's logical path pattern, e.g. "/callback/{provider}".
// Hook matchers key on this value for both router dispatch and direct calls.
func (c *Context) Path() string {
	return c.path
}

// Method returns the endpoint's HTTP method.
func (c *Context) Method() string {
	return c.method
}

// Query returns the parsed and validated query value declared by the
// endpoint's schema, or nil when the endpoint declares none.
func (c *Context) Query() any {
	return c.query
}

// Body returns the parsed and validated body value declared by the endpoint's
// schema, or nil when the endpoint declares none.
func (c *Context) Body() any {
	return c.body
}

// Header returns the incoming request headers.
func (c *Context) Header() http.Header {
	return c.header
}

// Param returns a URL path parameter resolved by the router, e.g. "provider"
// for the pattern "/callback/{provider}". Empty for direct calls.
func (c *Context) Param(name string) string {
	return chi.URLParam(c.r, name)
}

// Get returns a context value set by a hook's context patch.
func (c *Context) Get(key string) any {
	return c.values[key]
}

// Set stores a context value. Before-hooks normally mutate context through a
// ContextPatch return so later hooks observe a single merge point, but direct
// assignment is allowed.
func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Cookie reads a plain cookie value from the inbound request.
func (c *Context) Cookie(name string) (string, error) {
	ck, err := c.r.Cookie(name)
	if err != nil {
		return "", cookie.ErrCookieNotFound
	}
	return ck.Value, nil
}

// SignedCookie reads a cookie and verifies its signature through the
// configured cookie manager.
func (c *Context) SignedCookie(name string) (string, error) {
	if c.signer == nil {
		return "", ErrNoCookieSigner
	}
	return c.signer.GetSigned(c.r, name)
}

// SetCookie buffers a cookie to be flushed onto the final response. Cookies
// accumulate in set order across before-hooks, the endpoint handler and
// after-hooks; setting a cookie never removes a previously buffered one.
func (c *Context) SetCookie(name, value string, opts ...cookie.Option) {
	if c.signer != nil {
		c.cookies = append(c.cookies, c.signer.Bake(name, value, opts...))
		return
	}

	options := cookie.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	for _, opt := range opts {
		opt(&options)
	}
	c.cookies = append(c.cookies, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// SetSignedCookie buffers a cookie whose value is HMAC-signed by the
// configured cookie manager.
func (c *Context) SetSignedCookie(name, value string, opts ...cookie.Option) error {
	if c.signer == nil {
		return ErrNoCookieSigner
	}
	c.cookies = append(c.cookies, c.signer.Bake(name, c.signer.Sign(value), opts...))
	return nil
}

// ClearCookie buffers an expired cookie removing the named cookie client-side.
func (c *Context) ClearCookie(name string) {
	if c.signer != nil {
		c.cookies = append(c.cookies, c.signer.Expire(name))
		return
	}
	c.cookies = append(c.cookies, &http.Cookie{Name: name, Path: "/", MaxAge: -1, Expires: time.Unix(0, 0)})
}

// Cookies returns the pending cookie buffer in set order.
func (c *Context) Cookies() []*http.Cookie {
	return c.cookies
}

// JSON builds a JSON result. Response helper mirroring the package-level
// constructor for handler ergonomics.
func (c *Context) JSON(payload any) *Result {
	return JSON(payload)
}

// Redirect builds a redirect result with status 302 Found.
func (c *Context) Redirect(location string) *Result {
	return Redirect(location)
}

// Returned exposes the in-flight outcome. During the before phase it is zero;
// once the after phase begins it holds the result or error produced so far,
// and only an after-hook's explicit return value can replace it.
func (c *Context) Returned() Outcome {
	return c.returned
}

// setReturned records the in-flight outcome. Ordinary handlers cannot reach
// this; the hook chain owns all writes.
func (c *Context) setReturned(o Outcome) {
	c.returned = o
}

// apply merges a context patch field by field; patch values win over existing
// ones, untouched fields survive.
func (c *Context) apply(p *ContextPatch) {
	if p == nil {
		return
	}
	maps.Copy(c.values, p.Values)
	for k, vs := range p.Header {
		c.header[k] = vs
	}
}

// Delegate context.Context methods to the request's context.

func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *Context) Err() error {
	return c.r.Context().Err()
}

func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

var _ context.Context = (*Context)(nil)
