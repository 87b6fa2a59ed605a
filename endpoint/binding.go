package endpoint

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/authkit/binder"
)

// binderFor selects the binder matching the input section and, for bodies,
// the request content type. JSON is the default body encoding.
func binderFor(r *http.Request, section string) func(*http.Request, any) error {
	if section == "query" {
		return binder.Query()
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return binder.Form()
	}
	return binder.JSON()
}
