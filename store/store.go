// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/danielhkuo/pollhub/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// PollFields holds the mutable columns of a poll
type PollFields struct {
	Title       string
	Description string
	Options     []string
}

// Store is the table-level contract the poll operations are written against.
// Implementations perform no ownership or role checks.
type Store interface {
	CreatePoll(ctx context.Context, ownerID string, f PollFields) (*models.Poll, error)
	GetPoll(ctx context.Context, id string) (*models.Poll, error)
	ListPollsByOwner(ctx context.Context, ownerID string) ([]models.Poll, error)
	ListPolls(ctx context.Context) ([]models.Poll, error)
	UpdatePoll(ctx context.Context, id string, f PollFields) error
	DeletePoll(ctx context.Context, id string) error

	InsertVote(ctx context.Context, pollID string, userID *string, optionIndex int) (*models.Vote, error)
	CountVotes(ctx context.Context, pollID string) (map[int]int, error)

	// ProfileRole returns the role on the user's profile, ErrNotFound without one
	ProfileRole(ctx context.Context, userID string) (string, error)
	// ActiveAdmin returns ErrNotFound unless an active admin_users row exists
	ActiveAdmin(ctx context.Context, userID string) error
}

// CastErr inspects the given error and replaces driver specific errors with
// easier to compare equivalents.
//
// See http://www.postgresql.org/docs/current/static/errcodes-appendix.html
func CastErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrConflict
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}
	return err
}
