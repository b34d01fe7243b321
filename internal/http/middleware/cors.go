package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// Allowlist is the set of hostnames permitted to call the API cross-origin.
// An entry matches a request origin when the origin's hostname equals the
// entry or ends with "." plus the entry, so "example.com" also admits
// "www.example.com". The single entry "*" admits any origin. Built once at
// startup and read-only afterwards.
type Allowlist struct {
	hosts    []string
	allowAny bool
}

// NewAllowlist builds an Allowlist from hostname patterns.
func NewAllowlist(hosts []string) Allowlist {
	a := Allowlist{}
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if h == "*" {
			a.allowAny = true
			continue
		}
		a.hosts = append(a.hosts, h)
	}
	return a
}

// Hosts returns the configured hostname patterns.
func (a Allowlist) Hosts() []string {
	if a.allowAny {
		return []string{"*"}
	}
	return a.hosts
}

// AllowsAny reports whether the allowlist is the wildcard "*".
func (a Allowlist) AllowsAny() bool {
	return a.allowAny
}

// Allows decides whether a request from the given Origin header value may
// access the API. An empty origin (same-origin or server-to-server call) is
// trusted. A malformed origin is denied, never a crash.
func (a Allowlist) Allows(origin string) bool {
	if origin == "" {
		return true
	}
	if a.allowAny {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	for _, h := range a.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// CORS guards every route with the origin allowlist. Requests from a denied
// origin receive 403 before reaching any handler, and the denied origin is
// never echoed back in Access-Control-Allow-Origin. Preflight OPTIONS
// requests from allowed origins are answered with 204.
func CORS(allowlist Allowlist) func(http.Handler) http.Handler {
	allowedMethods := "GET, POST, OPTIONS"
	allowedHeaders := "Content-Type, Authorization"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			w.Header().Add("Vary", "Origin")

			if !allowlist.Allows(origin) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			switch {
			case origin != "":
				w.Header().Set("Access-Control-Allow-Origin", origin)
			case allowlist.AllowsAny():
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
