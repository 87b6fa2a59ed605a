package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Router resolves inbound requests to registered endpoints, threads them
// through the hook chain, and converts outcomes to transport responses.
//
// Registration happens at startup; the registry freezes the first time the
// router serves or a handler is requested, and is never mutated afterwards.
// The frozen router is safe for concurrent use.
type Router struct {
	endpoints map[string]*Endpoint // METHOD + path
	byName    map[string]*Endpoint
	order     []*Endpoint
	hooks     hookChain
	signer    *cookie.Manager
	log       *slog.Logger

	once    sync.Once
	handler http.Handler
	frozen  bool
	mu      sync.Mutex
}

// RouterOption configures a Router during construction.
type RouterOption func(*Router)

// WithLogger sets the logger used for unhandled errors. Discards by default.
func WithLogger(l *slog.Logger) RouterOption {
	return func(rt *Router) {
		if l != nil {
			rt.log = l
		}
	}
}

// WithCookieManager sets the cookie manager used for cookie defaults and
// signed cookie values on every request context.
func WithCookieManager(m *cookie.Manager) RouterOption {
	return func(rt *Router) {
		rt.signer = m
	}
}

// NewRouter creates an empty router.
func NewRouter(opts ...RouterOption) *Router {
	rt := &Router{
		endpoints: make(map[string]*Endpoint),
		byName:    make(map[string]*Endpoint),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Register adds endpoints to the registry with conflict detection on both the
// method+path pair and the endpoint name.
func (rt *Router) Register(eps ...*Endpoint) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.frozen {
		return ErrRouterFrozen
	}

	for _, ep := range eps {
		if err := ep.validate(); err != nil {
			return err
		}
		if _, exists := rt.endpoints[ep.key()]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateEndpoint, ep.key())
		}
		if _, exists := rt.byName[ep.Name]; exists {
			return fmt.Errorf("%w: name %s", ErrDuplicateEndpoint, ep.Name)
		}
		rt.endpoints[ep.key()] = ep
		rt.byName[ep.Name] = ep
		rt.order = append(rt.order, ep)
	}
	return nil
}

// Before appends a before-hook. Hooks run in registration order; the order is
// load-bearing for short-circuiting and context patches.
func (rt *Router) Before(m Matcher, fn BeforeFunc) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.frozen {
		return ErrRouterFrozen
	}
	rt.hooks.before = append(rt.hooks.before, beforeHook{match: m, fn: fn})
	return nil
}

// After appends an after-hook running in registration order.
func (rt *Router) After(m Matcher, fn AfterFunc) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.frozen {
		return ErrRouterFrozen
	}
	rt.hooks.after = append(rt.hooks.after, afterHook{match: m, fn: fn})
	return nil
}

// Handler freezes the registry and returns the transport handler.
func (rt *Router) Handler() http.Handler {
	rt.once.Do(rt.build)
	return rt.handler
}

// ServeHTTP implements http.Handler, freezing the registry on first use.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.Handler().ServeHTTP(w, r)
}

func (rt *Router) build() {
	rt.mu.Lock()
	rt.frozen = true
	rt.mu.Unlock()

	mux := chi.NewRouter()
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{errorDetail{Code: "not_found", Message: "endpoint not found"}})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{errorDetail{Code: "method_not_allowed", Message: "method not allowed"}})
	})
	for _, ep := range rt.order {
		mux.Method(ep.Method, ep.Path, rt.dispatch(ep))
	}
	rt.handler = mux
}

// dispatch produces the transport handler for a single endpoint: build
// context, run the hook chain around the handler, serialize the outcome.
func (rt *Router) dispatch(ep *Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := rt.newContext(r, ep)
		if err != nil {
			// Validation failures short-circuit before any hook runs.
			rt.respond(w, r, ep, nil, Outcome{Err: err})
			return
		}
		out := rt.hooks.run(c, ep)
		rt.respond(w, r, ep, c, out)
	}
}

// newContext derives the per-request execution context from the inbound
// request and the endpoint's declared schema. The raw request is never
// mutated; headers are cloned.
func (rt *Router) newContext(r *http.Request, ep *Endpoint) (*Context, error) {
	c := &Context{
		r:      r,
		path:   ep.Path,
		method: ep.Method,
		header: r.Header.Clone(),
		values: make(map[string]any),
		signer: rt.signer,
	}

	if ep.Query != nil {
		q := ep.Query()
		if err := bindInput(r, q, "query"); err != nil {
			return nil, err
		}
		c.query = q
	}

	if ep.Body != nil {
		b := ep.Body()
		if err := bindInput(r, b, "body"); err != nil {
			return nil, err
		}
		c.body = b
	}

	return c, nil
}

// respond serializes an outcome onto the transport response: endpoint-level
// headers first, then all buffered cookies in set order, then the body.
func (rt *Router) respond(w http.ResponseWriter, r *http.Request, ep *Endpoint, c *Context, out Outcome) {
	for k, vs := range ep.Headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if c != nil {
		for _, ck := range c.cookies {
			http.SetCookie(w, ck)
		}
	}

	switch {
	case out.Err != nil:
		rt.writeError(w, r, out.Err)
	case out.Result != nil:
		rt.writeResult(w, r, out.Result)
	default:
		rt.writeError(w, r, ErrNilResult)
	}
}

func (rt *Router) writeResult(w http.ResponseWriter, r *http.Request, res *Result) {
	if res.IsRedirect() {
		http.Redirect(w, r, res.location, res.status)
		return
	}
	writeJSON(w, res.status, res.payload)
}

// writeError maps the error taxonomy to transport responses. Error messages
// are surfaced only for intentional *Error values; anything untyped renders a
// generic 500 body and is logged with the real cause.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		for k, vs := range apiErr.Header {
			if k == "Location" {
				continue // set by http.Redirect
			}
			w.Header()[k] = vs
		}
		if apiErr.IsRedirect() {
			http.Redirect(w, r, apiErr.Location(), apiErr.Status)
			return
		}
		writeJSON(w, apiErr.Status, errorBody{errorDetail{Code: apiErr.Code, Message: apiErr.Message}})
		return
	}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{
			Code:    "validation_error",
			Message: "request validation failed",
			Details: valErr,
		}})
		return
	}

	rt.log.LogAttrs(r.Context(), slog.LevelError, "unhandled endpoint error",
		logger.Error(err),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("router"),
	)
	writeJSON(w, http.StatusInternalServerError, errorBody{errorDetail{Code: "internal_error", Message: "internal server error"}})
}

// CallParams carries the inputs of a direct endpoint call.
type CallParams struct {
	Query  url.Values
	Params map[string]string // URL path parameters, e.g. {"provider": "facebook"}
	Body   any               // JSON-encoded when non-nil
	Header http.Header
}

// Call invokes a registered endpoint by name without going through the HTTP
// transport. The full hook chain runs keyed by the endpoint's logical path,
// so behavior is identical to router dispatch. The decoded result is
// returned; errors, including redirect signals, surface as typed errors.
func (rt *Router) Call(ctx context.Context, name string, p CallParams) (*Result, error) {
	rt.Handler() // freeze

	ep, ok := rt.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, name)
	}

	r, err := rt.syntheticRequest(ctx, ep, p)
	if err != nil {
		return nil, err
	}

	c, err := rt.newContext(r, ep)
	if err != nil {
		return nil, err
	}

	out := rt.hooks.run(c, ep)
	if out.Err != nil {
		return nil, out.Err
	}
	if out.Result == nil {
		return nil, ErrNilResult
	}
	return out.Result, nil
}

// CallResponse invokes a registered endpoint by name and returns the raw
// transport response, rendered exactly as router dispatch would, including
// Set-Cookie headers.
func (rt *Router) CallResponse(ctx context.Context, name string, p CallParams) (*http.Response, error) {
	rt.Handler() // freeze

	ep, ok := rt.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, name)
	}

	r, err := rt.syntheticRequest(ctx, ep, p)
	if err != nil {
		return nil, err
	}

	buf := newResponseBuffer()
	rt.dispatch(ep)(buf, r)
	return buf.response(r), nil
}

// syntheticRequest builds an http.Request equivalent to the one the transport
// would deliver for this endpoint, with path parameters resolvable through
// the router's URL param mechanism.
func (rt *Router) syntheticRequest(ctx context.Context, ep *Endpoint, p CallParams) (*http.Request, error) {
	path := ep.Path
	rctx := chi.NewRouteContext()
	for k, v := range p.Params {
		path = strings.ReplaceAll(path, "{"+k+"}", url.PathEscape(v))
		rctx.URLParams.Add(k, v)
	}

	var body io.Reader
	if p.Body != nil {
		raw, err := json.Marshal(p.Body)
		if err != nil {
			return nil, fmt.Errorf("endpoint: encode call body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	target := path
	if len(p.Query) > 0 {
		target += "?" + p.Query.Encode()
	}

	r, err := http.NewRequestWithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx), ep.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("endpoint: build call request: %w", err)
	}
	for k, vs := range p.Header {
		r.Header[k] = vs
	}
	if p.Body != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	return r, nil
}

// bindInput binds a query or body prototype from the request and runs its
// validation rules, translating failures into a ValidationError.
func bindInput(r *http.Request, v any, section string) error {
	bind := binderFor(r, section)
	if err := bind(r, v); err != nil {
		verr := NewValidationError()
		verr.Add(section, err.Error())
		return verr
	}

	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(); err != nil {
			var verr ValidationError
			if errors.As(err, &verr) {
				return verr
			}
			verr = NewValidationError()
			verr.Add(section, err.Error())
			return verr
		}
	}
	return nil
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// responseBuffer is a minimal in-memory ResponseWriter backing CallResponse.
type responseBuffer struct {
	code   int
	header http.Header
	body   bytes.Buffer
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: make(http.Header)}
}

func (b *responseBuffer) Header() http.Header {
	return b.header
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	if b.code == 0 {
		b.code = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *responseBuffer) WriteHeader(code int) {
	if b.code == 0 {
		b.code = code
	}
}

func (b *responseBuffer) response(r *http.Request) *http.Response {
	code := b.code
	if code == 0 {
		code = http.StatusOK
	}
	return &http.Response{
		Status:        http.StatusText(code),
		StatusCode:    code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        b.header,
		Body:          io.NopCloser(bytes.NewReader(b.body.Bytes())),
		ContentLength: int64(b.body.Len()),
		Request:       r,
	}
}
