// Package binder parses HTTP request inputs into typed Go structs.
//
// It is the input half of an endpoint's declared schema: query parameters,
// JSON bodies and form bodies are each bound by a dedicated binder function
// driven by struct tags. Binders report typed sentinel errors so callers can
// translate parse failures into validation errors without string matching.
//
// Usage:
//
//	type SearchRequest struct {
//		Query string   `query:"q"`
//		Tags  []string `query:"tags"`
//	}
//
//	var req SearchRequest
//	if err := binder.Query()(r, &req); err != nil {
//		// handle binder.ErrInvalidQuery
//	}
package binder
