package binder

import (
	"fmt"
	"net/http"
)

// Form creates a form data binder for application/x-www-form-urlencoded
// content. Field names come from `form` struct tags, falling back to the
// lowercased field name. Multi-value fields bind to slices.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded", ErrMissingContentType)
		}

		if mediaType(contentType) != "application/x-www-form-urlencoded" {
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded", ErrUnsupportedMediaType, contentType)
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		return bindToStruct(v, "form", r.Form, ErrInvalidForm)
	}
}
