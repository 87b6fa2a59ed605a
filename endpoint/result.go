package endpoint

import "net/http"

type resultKind int

const (
	resultJSON resultKind = iota + 1
	resultRedirect
)

// Result is the tagged outcome of an endpoint handler or hook: either a JSON
// payload or a redirect. Errors travel on the error channel, not in a Result.
type Result struct {
	kind     resultKind
	status   int
	payload  any
	location string
}

// JSON creates a JSON result rendered with status 200.
func JSON(payload any) *Result {
	return &Result{kind: resultJSON, status: http.StatusOK, payload: payload}
}

// JSONStatus creates a JSON result rendered with a specific status code.
func JSONStatus(payload any, status int) *Result {
	return &Result{kind: resultJSON, status: status, payload: payload}
}

// Redirect creates a redirect result with status 302 Found.
func Redirect(location string) *Result {
	return &Result{kind: resultRedirect, status: http.StatusFound, location: location}
}

// RedirectWithCode creates a redirect result with a specific 3xx status code.
func RedirectWithCode(location string, code int) *Result {
	return &Result{kind: resultRedirect, status: code, location: location}
}

// Payload returns the JSON payload, nil for redirects.
func (r *Result) Payload() any {
	return r.payload
}

// Location returns the redirect target, empty for JSON results.
func (r *Result) Location() string {
	return r.location
}

// StatusCode returns the HTTP status the result renders with.
func (r *Result) StatusCode() int {
	return r.status
}

// IsRedirect reports whether the result is a redirect variant.
func (r *Result) IsRedirect() bool {
	return r.kind == resultRedirect
}

// Outcome is the "returned" slot of a request context: the in-flight result
// or error produced by the before phase, the endpoint handler, or an
// after-hook rewrite. Exactly one of Result and Err is set once the endpoint
// phase completes.
type Outcome struct {
	Result *Result
	Err    error
}

// IsZero reports whether nothing has been produced yet.
func (o Outcome) IsZero() bool {
	return o.Result == nil && o.Err == nil
}
