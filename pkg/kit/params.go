package kit

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// URLParam returns the decoded value of a chi route parameter. chi matches
// against the raw path when the request has one, e.g. for "%2C" or "%2F",
// leaving the parameter escaped.
func URLParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}
