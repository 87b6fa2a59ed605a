package endpoint

import (
	"net/http"
	"strings"
)

// Matcher decides whether a hook applies to a request. It receives the
// endpoint's logical path and the request context. After-phase matchers are
// always evaluated against the original inbound path, never a patched one.
type Matcher func(path string, c *Context) bool

// MatchAll matches every request.
func MatchAll() Matcher {
	return func(string, *Context) bool { return true }
}

// MatchPath matches an exact logical path pattern.
func MatchPath(path string) Matcher {
	return func(p string, _ *Context) bool { return p == path }
}

// MatchPrefix matches logical paths sharing a prefix.
func MatchPrefix(prefix string) Matcher {
	return func(p string, _ *Context) bool { return strings.HasPrefix(p, prefix) }
}

// ContextPatch is an explicit, field-level context override returned by a
// before-hook. Values and headers merge into the context with patch values
// winning; fields the patch does not name are untouched.
type ContextPatch struct {
	Values map[string]any
	Header http.Header
}

// HookResult is a before-hook's decision. At most one field is honored:
// a non-nil Result short-circuits the endpoint (the after phase still runs),
// otherwise a non-nil Patch is merged into the context before the next hook.
// A nil HookResult means "continue unchanged".
type HookResult struct {
	Result *Result
	Patch  *ContextPatch
}

// ShortCircuit builds a HookResult that supplies the final result and skips
// the endpoint handler and all later before-hooks.
func ShortCircuit(r *Result) *HookResult {
	return &HookResult{Result: r}
}

// Patch builds a HookResult that merges values into the request context.
func Patch(values map[string]any) *HookResult {
	return &HookResult{Patch: &ContextPatch{Values: values}}
}

// BeforeFunc runs before the endpoint handler. Returning an error aborts the
// before phase and the endpoint call; the error lands in the context's
// returned slot and the after phase still runs.
type BeforeFunc func(c *Context) (*HookResult, error)

// AfterFunc runs after the endpoint phase and observes the in-flight outcome
// via c.Returned(). Returning a non-nil Result replaces the outcome;
// returning an error replaces it with that error. Either way later
// after-hooks observe the rewrite, which allows chained error transformation.
type AfterFunc func(c *Context) (*Result, error)

type beforeHook struct {
	match Matcher
	fn    BeforeFunc
}

type afterHook struct {
	match Matcher
	fn    AfterFunc
}

// hookChain holds the two closed hook phases in registration order. The order
// is load-bearing: later hooks in a phase observe effects of earlier ones.
type hookChain struct {
	before []beforeHook
	after  []afterHook
}

// run threads a request context through the before phase, the endpoint
// handler and the after phase, returning the surviving outcome.
func (h hookChain) run(c *Context, ep *Endpoint) Outcome {
	intercepted := false

	for _, hook := range h.before {
		if !hook.match(c.path, c) {
			continue
		}
		res, err := hook.fn(c)
		if err != nil {
			c.setReturned(Outcome{Err: err})
			intercepted = true
			break
		}
		if res == nil {
			continue
		}
		if res.Result != nil {
			// First matching short-circuit wins; the endpoint and all later
			// before-hooks are skipped.
			c.setReturned(Outcome{Result: res.Result})
			intercepted = true
			break
		}
		c.apply(res.Patch)
	}

	if !intercepted {
		res, err := ep.Handler(c)
		switch {
		case err != nil:
			c.setReturned(Outcome{Err: err})
		case res == nil:
			c.setReturned(Outcome{Err: ErrNilResult})
		default:
			c.setReturned(Outcome{Result: res})
		}
	}

	// The after phase always runs, even over an aborted before phase, so
	// hooks get a final chance to observe and rewrite errors.
	c.inAfter = true
	for _, hook := range h.after {
		if !hook.match(c.path, c) {
			continue
		}
		res, err := hook.fn(c)
		if err != nil {
			c.setReturned(Outcome{Err: err})
			continue
		}
		if res != nil {
			c.setReturned(Outcome{Result: res})
		}
	}

	return c.returned
}
