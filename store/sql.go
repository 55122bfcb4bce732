// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/pollhub/models"
)

// SQLStore implements Store on top of PostgreSQL or SQLite
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// NewID returns a time-ordered UUIDv7 string for primary keys
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *SQLStore) CreatePoll(ctx context.Context, ownerID string, f PollFields) (*models.Poll, error) {
	p := models.Poll{
		ID:          NewID(),
		UserID:      ownerID,
		Title:       f.Title,
		Description: f.Description,
		Options:     models.Options(f.Options),
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO polls (id, user_id, title, description, options, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), p.ID, p.UserID, p.Title, p.Description, p.Options, p.CreatedAt)
	if err != nil {
		return nil, CastErr(err)
	}
	return &p, nil
}

func (s *SQLStore) GetPoll(ctx context.Context, id string) (*models.Poll, error) {
	var p models.Poll
	err := s.db.GetContext(ctx, &p, s.db.Rebind(`
		SELECT id, user_id, title, description, options, created_at
		FROM polls
		WHERE id = ?
	`), id)
	if err != nil {
		return nil, CastErr(err)
	}
	return &p, nil
}

func (s *SQLStore) ListPollsByOwner(ctx context.Context, ownerID string) ([]models.Poll, error) {
	polls := []models.Poll{}
	err := s.db.SelectContext(ctx, &polls, s.db.Rebind(`
		SELECT id, user_id, title, description, options, created_at
		FROM polls
		WHERE user_id = ?
		ORDER BY created_at DESC
	`), ownerID)
	return polls, CastErr(err)
}

func (s *SQLStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	polls := []models.Poll{}
	err := s.db.SelectContext(ctx, &polls, `
		SELECT id, user_id, title, description, options, created_at
		FROM polls
		ORDER BY created_at DESC
	`)
	return polls, CastErr(err)
}

func (s *SQLStore) UpdatePoll(ctx context.Context, id string, f PollFields) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE polls
		SET title = ?, description = ?, options = ?
		WHERE id = ?
	`), f.Title, f.Description, models.Options(f.Options), id)
	if err != nil {
		return CastErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePoll removes the poll and, through the foreign key, its votes.
// Deleting a poll that is already gone returns ErrNotFound.
func (s *SQLStore) DeletePoll(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM polls WHERE id = ?`), id)
	if err != nil {
		return CastErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) InsertVote(ctx context.Context, pollID string, userID *string, optionIndex int) (*models.Vote, error) {
	v := models.Vote{
		ID:          NewID(),
		PollID:      pollID,
		UserID:      userID,
		OptionIndex: optionIndex,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO votes (id, poll_id, user_id, option_index, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), v.ID, v.PollID, v.UserID, v.OptionIndex, v.CreatedAt)
	if err != nil {
		return nil, CastErr(err)
	}
	return &v, nil
}

// CountVotes returns option_index -> number of votes
func (s *SQLStore) CountVotes(ctx context.Context, pollID string) (map[int]int, error) {
	var rows []struct {
		OptionIndex int `db:"option_index"`
		Votes       int `db:"votes"`
	}
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT option_index, COUNT(*) AS votes
		FROM votes
		WHERE poll_id = ?
		GROUP BY option_index
	`), pollID)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", CastErr(err))
	}

	counts := make(map[int]int, len(rows))
	for _, r := range rows {
		counts[r.OptionIndex] = r.Votes
	}
	return counts, nil
}

func (s *SQLStore) ProfileRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := s.db.GetContext(ctx, &role, s.db.Rebind(`
		SELECT role FROM user_profiles WHERE user_id = ?
	`), userID)
	return role, CastErr(err)
}

func (s *SQLStore) ActiveAdmin(ctx context.Context, userID string) error {
	var id string
	err := s.db.GetContext(ctx, &id, s.db.Rebind(`
		SELECT user_id FROM admin_users WHERE user_id = ? AND is_active = ?
	`), userID, true)
	return CastErr(err)
}

// GrantAdmin adds or re-activates an admin_users row
func (s *SQLStore) GrantAdmin(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO admin_users (user_id, is_active, granted_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET is_active = excluded.is_active, granted_at = excluded.granted_at
	`), userID, true, time.Now().UTC())
	return CastErr(err)
}

// RevokeAdmin deactivates an admin_users row
func (s *SQLStore) RevokeAdmin(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE admin_users SET is_active = ? WHERE user_id = ?
	`), false, userID)
	if err != nil {
		return CastErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
