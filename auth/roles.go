// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollhub/identity"
	"github.com/danielhkuo/pollhub/models"
	"github.com/danielhkuo/pollhub/store"
)

// RoleStore is the subset of the store used for role lookups.
// Both methods return store.ErrNotFound for a normal negative.
type RoleStore interface {
	ProfileRole(ctx context.Context, userID string) (string, error)
	ActiveAdmin(ctx context.Context, userID string) error
}

// RoleSource says where an admin grant came from
type RoleSource int

const (
	RoleSourceNone RoleSource = iota
	RoleSourceProfile
	RoleSourceRoster
)

func (s RoleSource) String() string {
	switch s {
	case RoleSourceProfile:
		return "profile"
	case RoleSourceRoster:
		return "roster"
	default:
		return "none"
	}
}

// Resolution is the outcome of a role lookup. Err is set when a lookup
// failed; Source is then always RoleSourceNone.
type Resolution struct {
	Source RoleSource
	Err    error
}

func (r Resolution) IsAdmin() bool {
	return r.Source != RoleSourceNone
}

// ResolveRole checks the user's profile role first and the admin roster
// second. Any lookup error other than not-found ends the lookup with
// RoleSourceNone.
func ResolveRole(ctx context.Context, roles RoleStore, userID string) Resolution {
	if roles == nil || userID == "" {
		return Resolution{}
	}

	role, err := roles.ProfileRole(ctx, userID)
	switch {
	case err == nil && role == models.RoleAdmin:
		return Resolution{Source: RoleSourceProfile}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return Resolution{Err: fmt.Errorf("profile lookup: %w", err)}
	}

	err = roles.ActiveAdmin(ctx, userID)
	switch {
	case err == nil:
		return Resolution{Source: RoleSourceRoster}
	case errors.Is(err, store.ErrNotFound):
		return Resolution{}
	default:
		return Resolution{Err: fmt.Errorf("admin roster lookup: %w", err)}
	}
}

// IsAdmin reports whether userID holds administrator privileges. Lookup
// failures and panics are logged and reported as false.
func IsAdmin(ctx context.Context, roles RoleStore, userID string) (admin bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("admin check panicked", "user_id", userID, "panic", r)
			admin = false
		}
	}()

	res := ResolveRole(ctx, roles, userID)
	if res.Err != nil {
		slog.Error("admin check failed", "user_id", userID, "error", res.Err)
		return false
	}
	return res.IsAdmin()
}

// IsCurrentAdmin runs IsAdmin for the user stored in ctx. No user means false.
func IsCurrentAdmin(ctx context.Context, roles RoleStore) bool {
	user := identity.CurrentUser(ctx)
	if user == nil {
		return false
	}
	return IsAdmin(ctx, roles, user.ID)
}
