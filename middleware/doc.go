// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

All middleware has the func(http.Handler) http.Handler shape and plugs into
chi with r.Use.

# Request Logging

	r.Use(middleware.WithLogging)

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request id comes from chi's RequestID middleware.

# Sessions

	r.Use(middleware.Session(provider))

Reads the token from "Authorization: Bearer ..." or the pollhub.session
cookie, resolves it through the identity provider and stores the session in
the request context. Invalid tokens are ignored; the request continues
anonymously. SetSessionCookie and ClearSessionCookie manage the cookie on
login and logout.

# Access Policy

	r.Use(middleware.RequireIdentity)

Anonymous requests are redirected (307) to /login unless the path starts
with /login, /register, /auth or /api/auth.

# CSRF Guard

	r.Use(middleware.CSRF)

POST, PUT, PATCH and DELETE requests need both Origin and Referer headers,
and the Referer must start with the Origin. Otherwise the request is
rejected with 403 "CSRF validation failed" before any handler runs.

# CORS

	r.Use(middleware.CORS(cfg.AllowedOrigins))

Uses github.com/go-chi/cors with credentials allowed.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ActionError(w, err) // status from *actions.Error
*/
package middleware
