package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Package-level errors for registry and execution failures.
var (
	// ErrNilResult indicates an endpoint handler returned neither a result nor an error.
	ErrNilResult = errors.New("endpoint: handler returned nil result")
	// ErrRouterFrozen indicates registration was attempted after the router started serving.
	ErrRouterFrozen = errors.New("endpoint: router is frozen, register before calling Handler")
	// ErrDuplicateEndpoint indicates two endpoints share the same method and path.
	ErrDuplicateEndpoint = errors.New("endpoint: duplicate method and path")
	// ErrUnknownEndpoint indicates a direct call referenced an unregistered endpoint name.
	ErrUnknownEndpoint = errors.New("endpoint: unknown endpoint name")
	// ErrNoCookieSigner indicates a signed cookie operation without a configured cookie manager.
	ErrNoCookieSigner = errors.New("endpoint: no cookie manager configured")
)

// Error is an intentional, caller-facing error carrying an HTTP status class,
// a stable machine-readable code and a human-readable message. Any handler or
// hook may construct one; its message is deliberately surfaced in responses,
// unlike untyped errors which are masked.
type Error struct {
	Status  int
	Code    string
	Message string
	Header  http.Header
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Location returns the Location header value, if any.
func (e *Error) Location() string {
	if e.Header == nil {
		return ""
	}
	return e.Header.Get("Location")
}

// IsRedirect reports whether the error is a redirect signal: a 3xx status
// paired with a Location header.
func (e *Error) IsRedirect() bool {
	return e.Status >= http.StatusMultipleChoices && e.Status < http.StatusBadRequest && e.Location() != ""
}

// NewError creates an Error with the given status, code and message.
//
// Example:
//
//	return nil, endpoint.NewError(http.StatusUnauthorized, "unauthorized", "session expired")
func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// NewRedirectError creates a redirect signal: an Error with status 302 Found
// and a Location header. Handlers use it to abort execution with a redirect
// that stays catchable as a typed error by hooks and direct callers.
func NewRedirectError(location string) *Error {
	h := http.Header{}
	h.Set("Location", location)
	return &Error{Status: http.StatusFound, Code: "found", Message: "redirect to " + location, Header: h}
}

// ValidationError represents field validation errors produced while building
// the request context. It's based on url.Values to leverage built-in string
// slice handling.
type ValidationError url.Values

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for field, messages := range e {
		if len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
