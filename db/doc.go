// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open picks the driver from the database type, or from the DSN when the type
is empty:

	conn, err := db.Open("postgres://...", "")   // lib/pq
	conn, err := db.Open("file:polls.db", "")     // modernc.org/sqlite

SQLite connections are limited to a single open connection with foreign keys
enabled.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users, revoked_sessions: owned by the identity provider
  - user_profiles, admin_users: read by the admin role check
  - polls: owner, title, description, options (JSON array)
  - votes: one row per submitted vote, user_id NULL when anonymous

# Relationships

	polls 1──* votes (ON DELETE CASCADE)
*/
package db
