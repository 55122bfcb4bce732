// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"

	"github.com/danielhkuo/pollhub/models"
)

type ctxKey int

const (
	userKey ctxKey = iota
	sessionKey
)

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// WithSession stores the session and its user
func WithSession(ctx context.Context, s *Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, s)
	return WithUser(ctx, &s.User)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// CurrentUser returns the request's user or nil
func CurrentUser(ctx context.Context) *models.User {
	u, _ := UserFromContext(ctx)
	return u
}
