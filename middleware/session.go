// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/pollhub/identity"
)

// SessionCookie is the name of the cookie carrying the session token
const SessionCookie = "pollhub.session"

// SessionToken returns the bearer token from the Authorization header, or
// the session cookie when there is no header
func SessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Session resolves the caller's session and stores it in the request
// context. Requests without a valid session continue anonymously.
func Session(p identity.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := p.GetSession(r.Context(), token)
			switch {
			case err == nil:
				r = r.WithContext(identity.WithSession(r.Context(), sess))
			case errors.Is(err, identity.ErrNoSession):
			default:
				slog.Error("failed to resolve session", "error", err)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookie stores the session token in an HttpOnly cookie
func SetSessionCookie(w http.ResponseWriter, r *http.Request, sess *identity.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
