// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package actions

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/pollhub/auth"
	"github.com/danielhkuo/pollhub/identity"
	"github.com/danielhkuo/pollhub/models"
	"github.com/danielhkuo/pollhub/sanitize"
	"github.com/danielhkuo/pollhub/store"
)

// Polls runs poll operations on behalf of the user stored in the context
type Polls struct {
	store store.Store
	roles auth.RoleStore
}

// NewPolls returns Polls using s for both rows and role lookups
func NewPolls(s store.Store) *Polls {
	return &Polls{store: s, roles: s}
}

// WithRoles replaces the role lookup used for admin checks
func (p *Polls) WithRoles(roles auth.RoleStore) *Polls {
	cp := *p
	cp.roles = roles
	return &cp
}

// CreatePoll validates in and stores a poll owned by the current user
func (p *Polls) CreatePoll(ctx context.Context, in sanitize.PollInput) (*models.Poll, error) {
	fields, err := sanitize.Normalize(in)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: sanitize.InvalidPollMessage, Err: err}
	}

	user := identity.CurrentUser(ctx)
	if user == nil {
		return nil, fail(KindAuthRequired, msgLoginToCreate)
	}

	poll, err := p.store.CreatePoll(ctx, user.ID, store.PollFields(fields))
	if err != nil {
		slog.Error("failed to create poll", "user_id", user.ID, "error", err)
		return nil, storeErr(err)
	}

	slog.Info("poll created", "poll_id", poll.ID, "user_id", user.ID, "options", len(poll.Options))
	return poll, nil
}

// GetUserPolls lists the current user's polls, newest first
func (p *Polls) GetUserPolls(ctx context.Context) ([]models.Poll, error) {
	user := identity.CurrentUser(ctx)
	if user == nil {
		return []models.Poll{}, fail(KindAuthRequired, msgNotAuthed)
	}

	polls, err := p.store.ListPollsByOwner(ctx, user.ID)
	if err != nil {
		slog.Error("failed to list polls", "user_id", user.ID, "error", err)
		return []models.Poll{}, storeErr(err)
	}
	return polls, nil
}

// GetPollByID returns a poll to anyone, signed in or not
func (p *Polls) GetPollByID(ctx context.Context, id string) (*models.Poll, error) {
	if !sanitize.ValidIdentifier(id) {
		return nil, fail(KindValidation, msgInvalidID)
	}

	poll, err := p.store.GetPoll(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Error{Kind: KindNotFound, Message: msgPollNotFound, Err: err}
	}
	if err != nil {
		slog.Error("failed to get poll", "poll_id", id, "error", err)
		return nil, storeErr(err)
	}
	return poll, nil
}

// UpdatePoll replaces the title, description and options of a poll owned by
// the current user
func (p *Polls) UpdatePoll(ctx context.Context, id string, in sanitize.PollInput) error {
	fields, err := sanitize.Normalize(in)
	if err != nil {
		return &Error{Kind: KindValidation, Message: sanitize.InvalidPollMessage, Err: err}
	}

	user := identity.CurrentUser(ctx)
	if user == nil {
		return fail(KindAuthRequired, msgLoginToUpdate)
	}
	if !sanitize.ValidIdentifier(id) {
		return fail(KindValidation, msgInvalidID)
	}

	poll, err := p.target(ctx, id)
	if err != nil {
		return err
	}

	if d := auth.Authorize(ctx, p.roles, auth.ActionUpdate, user.ID, poll.UserID); !d.Allowed {
		slog.Info("poll update denied", "poll_id", id, "user_id", user.ID)
		return fail(KindDenied, msgDeniedUpdate)
	}

	if err := p.store.UpdatePoll(ctx, id, store.PollFields(fields)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &Error{Kind: KindNotFound, Message: msgNotFoundOrDeny, Err: err}
		}
		slog.Error("failed to update poll", "poll_id", id, "error", err)
		return storeErr(err)
	}

	slog.Info("poll updated", "poll_id", id, "user_id", user.ID)
	return nil
}

// DeletePoll removes a poll owned by the current user, or any poll when the
// current user is an administrator
func (p *Polls) DeletePoll(ctx context.Context, id string) error {
	user := identity.CurrentUser(ctx)
	if user == nil {
		return fail(KindAuthRequired, msgLoginToDelete)
	}
	if !sanitize.ValidIdentifier(id) {
		return fail(KindValidation, msgInvalidID)
	}

	poll, err := p.target(ctx, id)
	if err != nil {
		return err
	}

	d := auth.Authorize(ctx, p.roles, auth.ActionDelete, user.ID, poll.UserID)
	if !d.Allowed {
		slog.Info("poll delete denied", "poll_id", id, "user_id", user.ID)
		return fail(KindDenied, msgDeniedDelete)
	}

	if err := p.store.DeletePoll(ctx, id); err != nil {
		// Lost a race with another delete
		if errors.Is(err, store.ErrNotFound) {
			return &Error{Kind: KindNotFound, Message: msgNotFoundOrDeny, Err: err}
		}
		slog.Error("failed to delete poll", "poll_id", id, "error", err)
		return storeErr(err)
	}

	slog.Info("poll deleted", "poll_id", id, "user_id", user.ID, "as_admin", !d.Owner)
	return nil
}

// target loads the poll a mutation applies to. A missing poll and a failed
// lookup get the same message.
func (p *Polls) target(ctx context.Context, id string) (*models.Poll, error) {
	poll, err := p.store.GetPoll(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to load poll", "poll_id", id, "error", err)
		}
		return nil, &Error{Kind: KindNotFound, Message: msgNotFoundOrDeny, Err: err}
	}
	return poll, nil
}

// ListAllPolls lists every poll for an administrator
func (p *Polls) ListAllPolls(ctx context.Context) ([]models.Poll, error) {
	user := identity.CurrentUser(ctx)
	if user == nil {
		return nil, fail(KindAuthRequired, msgNotAuthed)
	}
	if !auth.IsAdmin(ctx, p.roles, user.ID) {
		return nil, fail(KindDenied, msgAdminOnly)
	}

	polls, err := p.store.ListPolls(ctx)
	if err != nil {
		slog.Error("failed to list all polls", "error", err)
		return nil, storeErr(err)
	}
	return polls, nil
}
