// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSOptions returns the cross-origin policy for the given origins
func CORSOptions(allowedOrigins []string) cors.Options {
	return cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// CORS allows cross-origin requests from allowedOrigins
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(CORSOptions(allowedOrigins))
}
