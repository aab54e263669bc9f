package http

import (
	"net/http"
	"strings"
)

// apiPolicy is the Content-Security-Policy for JSON responses: nothing may be
// loaded and no page may frame them.
var apiPolicy = strings.Join([]string{
	"default-src 'none'",
	"frame-ancestors 'none'",
	"base-uri 'none'",
	"form-action 'none'",
}, "; ")

// SecurityHeaders sets Content-Security-Policy and related hardening headers.
// With reportOnly the policy is sent as Content-Security-Policy-Report-Only.
func SecurityHeaders(reportOnly bool) Middleware {
	cspHeader := "Content-Security-Policy"
	if reportOnly {
		cspHeader = "Content-Security-Policy-Report-Only"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(cspHeader, apiPolicy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
