// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollhub/store"
	"github.com/danielhkuo/pollhub/testutil"
)

func TestCreateAndGetPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()

	created, err := s.CreatePoll(ctx, "owner-1", store.PollFields{
		Title:       "Lunch?",
		Description: "Pick one",
		Options:     []string{"Pizza", "Sushi", "Tacos"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := s.GetPoll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", got.UserID)
	assert.Equal(t, "Lunch?", got.Title)
	assert.Equal(t, "Pick one", got.Description)
	assert.Equal(t, []string{"Pizza", "Sushi", "Tacos"}, []string(got.Options))
}

func TestGetPollNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)

	_, err := s.GetPoll(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListPollsOrdering(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()

	first := testutil.CreateTestPoll(t, conn, "owner-1")
	time.Sleep(2 * time.Millisecond)
	second := testutil.CreateTestPoll(t, conn, "owner-2")
	time.Sleep(2 * time.Millisecond)
	third := testutil.CreateTestPoll(t, conn, "owner-1")

	all, err := s.ListPolls(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := s.ListPollsByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	none, err := s.ListPollsByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdatePoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()
	poll := testutil.CreateTestPoll(t, conn, "owner-1")

	err := s.UpdatePoll(ctx, poll.ID, store.PollFields{Title: "New", Options: []string{"A", "B", "C"}})
	require.NoError(t, err)

	got, err := s.GetPoll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "owner-1", got.UserID, "owner must not change")
	assert.Len(t, got.Options, 3)

	err = s.UpdatePoll(ctx, "missing", store.PollFields{Title: "x", Options: []string{"a", "b"}})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletePollCascadesVotes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()
	poll := testutil.CreateTestPoll(t, conn, "owner-1")

	_, err := s.InsertVote(ctx, poll.ID, nil, 0)
	require.NoError(t, err)
	require.Equal(t, 1, testutil.CountVotes(t, conn, poll.ID))

	require.NoError(t, s.DeletePoll(ctx, poll.ID))
	assert.Equal(t, 0, testutil.CountVotes(t, conn, poll.ID))

	// Second delete of the same poll
	assert.ErrorIs(t, s.DeletePoll(ctx, poll.ID), store.ErrNotFound)
}

func TestInsertAndCountVotes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()
	poll := testutil.CreateTestPoll(t, conn, "owner-1", "A", "B", "C")

	voter := "voter-1"
	v, err := s.InsertVote(ctx, poll.ID, &voter, 2)
	require.NoError(t, err)
	require.NotNil(t, v.UserID)
	assert.Equal(t, voter, *v.UserID)

	_, err = s.InsertVote(ctx, poll.ID, nil, 2)
	require.NoError(t, err)
	_, err = s.InsertVote(ctx, poll.ID, nil, 0)
	require.NoError(t, err)

	counts, err := s.CountVotes(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 1, 2: 2}, counts)
}

func TestInsertVoteUnknownPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)

	_, err := s.InsertVote(context.Background(), "missing", nil, 0)
	assert.Error(t, err)
}

func TestRoleLookups(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()

	testutil.SetProfileRole(t, conn, "u-admin", "admin")
	testutil.AddAdminMember(t, conn, "u-roster", true)
	testutil.AddAdminMember(t, conn, "u-inactive", false)

	role, err := s.ProfileRole(ctx, "u-admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	_, err = s.ProfileRole(ctx, "u-none")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, s.ActiveAdmin(ctx, "u-roster"))
	assert.ErrorIs(t, s.ActiveAdmin(ctx, "u-inactive"), store.ErrNotFound)
	assert.ErrorIs(t, s.ActiveAdmin(ctx, "u-none"), store.ErrNotFound)
}

func TestGrantAndRevokeAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()

	require.NoError(t, s.GrantAdmin(ctx, "u-1"))
	assert.NoError(t, s.ActiveAdmin(ctx, "u-1"))

	require.NoError(t, s.RevokeAdmin(ctx, "u-1"))
	assert.ErrorIs(t, s.ActiveAdmin(ctx, "u-1"), store.ErrNotFound)

	// Granting again re-activates the row
	require.NoError(t, s.GrantAdmin(ctx, "u-1"))
	assert.NoError(t, s.ActiveAdmin(ctx, "u-1"))

	assert.ErrorIs(t, s.RevokeAdmin(ctx, "u-unknown"), store.ErrNotFound)
}

func TestCastErr(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("get: %w", sql.ErrNoRows), store.ErrNotFound},
		{"pq unique", &pq.Error{Code: "23505"}, store.ErrConflict},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), store.ErrConflict},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.CastErr(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
