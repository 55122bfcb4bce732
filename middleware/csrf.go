// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

// CSRF rejects state-changing requests whose Referer does not start with
// their Origin. Both headers are required.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			origin := r.Header.Get("Origin")
			referer := r.Header.Get("Referer")
			if origin == "" || referer == "" || !strings.HasPrefix(referer, origin) {
				slog.Info("csrf check failed", "method", r.Method, "path", r.URL.Path, "origin", origin)
				ErrorResponse(w, http.StatusForbidden, "CSRF validation failed")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
