package middleware

import (
	"net/http"
	"strings"
)

// NormalizePath strips prefix (e.g. "/api") and any trailing slash from the
// request path before routing, so "/api/models/status/" and
// "/models/status" reach the same handler.
func NormalizePath(prefix string, next http.Handler) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if prefix != "" && (p == prefix || strings.HasPrefix(p, prefix+"/")) {
			p = strings.TrimPrefix(p, prefix)
		}
		if len(p) > 1 {
			p = strings.TrimRight(p, "/")
		}
		if p == "" {
			p = "/"
		}
		if p != r.URL.Path {
			r2 := r.Clone(r.Context())
			r2.URL.Path = p
			r2.URL.RawPath = ""
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}
