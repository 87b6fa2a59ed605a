package endpoint

import (
	"errors"
	"net/http"
)

// Handler is an endpoint's business logic. It returns a tagged Result or an
// error; redirect signals are errors built with NewRedirectError so they stay
// catchable by hooks and direct callers.
type Handler func(c *Context) (*Result, error)

// Validatable lets bound query/body values carry their own validation rules.
// The context builder invokes Validate after binding; a returned
// ValidationError is surfaced as-is, any other error is wrapped into one.
type Validatable interface {
	Validate() error
}

// Metadata describes an endpoint for registries and generated clients.
type Metadata struct {
	OperationID string
	Description string
}

// Endpoint is a named, schema-typed unit of business logic bound to a method
// and path. Query and Body are optional prototype constructors returning
// pointers to the structs the binder fills; a nil constructor means the
// endpoint declares no input of that kind.
//
// Headers accumulate response headers applied to every response the endpoint
// produces. The endpoint is referenced, never copied, by the router.
type Endpoint struct {
	Name     string
	Method   string
	Path     string
	Query    func() any
	Body     func() any
	Handler  Handler
	Headers  http.Header
	Metadata Metadata
}

// key identifies the endpoint in the registry.
func (e *Endpoint) key() string {
	return e.Method + " " + e.Path
}

// validate checks the minimum shape required for registration.
func (e *Endpoint) validate() error {
	switch {
	case e == nil:
		return errors.New("endpoint: nil endpoint")
	case e.Name == "":
		return errors.New("endpoint: name is required")
	case e.Method == "":
		return errors.New("endpoint: method is required")
	case e.Path == "" || e.Path[0] != '/':
		return errors.New("endpoint: path must start with /")
	case e.Handler == nil:
		return errors.New("endpoint: handler is required")
	}
	return nil
}
