package authkit

import (
	"github.com/dmitrymomot/authkit/endpoint"
)

// Core engine types re-exported for single-import usage.
type (
	Router          = endpoint.Router
	RouterOption    = endpoint.RouterOption
	Endpoint        = endpoint.Endpoint
	Handler         = endpoint.Handler
	Context         = endpoint.Context
	ContextPatch    = endpoint.ContextPatch
	Result          = endpoint.Result
	Outcome         = endpoint.Outcome
	Error           = endpoint.Error
	ValidationError = endpoint.ValidationError
	HookResult      = endpoint.HookResult
	BeforeFunc      = endpoint.BeforeFunc
	AfterFunc       = endpoint.AfterFunc
	Matcher         = endpoint.Matcher
	Metadata        = endpoint.Metadata
	CallParams      = endpoint.CallParams
	Validatable     = endpoint.Validatable
)

// NewRouter creates an endpoint router. See endpoint.NewRouter.
func NewRouter(opts ...RouterOption) *Router {
	return endpoint.NewRouter(opts...)
}

// WithLogger attaches a structured logger to the router.
var WithLogger = endpoint.WithLogger

// WithCookieManager attaches a cookie signer used by SignedCookie helpers.
var WithCookieManager = endpoint.WithCookieManager

// Result constructors.
var (
	JSON             = endpoint.JSON
	JSONStatus       = endpoint.JSONStatus
	Redirect         = endpoint.Redirect
	RedirectWithCode = endpoint.RedirectWithCode
)

// Error constructors.
var (
	NewError           = endpoint.NewError
	NewRedirectError   = endpoint.NewRedirectError
	NewValidationError = endpoint.NewValidationError
)

// Hook helpers.
var (
	ShortCircuit = endpoint.ShortCircuit
	Patch        = endpoint.Patch
	MatchAll     = endpoint.MatchAll
	MatchPath    = endpoint.MatchPath
	MatchPrefix  = endpoint.MatchPrefix
)
