// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/pollhub/identity"
)

// PublicPrefixes are the path prefixes reachable without a session
var PublicPrefixes = []string{"/login", "/register", "/auth", "/api/auth"}

// LoginPath is where RequireIdentity sends anonymous callers
const LoginPath = "/login"

// IsPublicPath reports whether path starts with one of the public prefixes
func IsPublicPath(path string) bool {
	for _, prefix := range PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequireIdentity redirects callers without a session to LoginPath unless
// the path is public. Must run after Session.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity.CurrentUser(r.Context()) == nil && !IsPublicPath(r.URL.Path) {
			http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
