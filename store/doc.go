// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the poll repository: table-scoped reads and writes over the
polls, votes, user_profiles and admin_users tables.

# Contract

Store performs no ownership or role checks. Callers decide whether an
operation is allowed and only then call the mutating methods:

	s := store.NewSQLStore(conn)
	poll, err := s.GetPoll(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		...
	}

Lists are ordered by created_at descending.

# Errors

Driver errors pass through CastErr:

  - sql.ErrNoRows and zero affected rows become ErrNotFound
  - unique violations (Postgres 23505, SQLite UNIQUE) become ErrConflict
  - everything else is returned unchanged

Deleting an already deleted poll returns ErrNotFound.

# Queries

Queries are written with ? placeholders and passed through sqlx Rebind, so the
same statements run on PostgreSQL and SQLite.
*/
package store
