// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollhub server.

pollhub lets registered users create polls, lets anyone vote on them
(signed-in or anonymously), and lets admins list and remove any poll.

# Commands

	pollhub serve                 Start the HTTP server
	pollhub migrate               Create the database schema
	pollhub admin grant <user-id> Add or reactivate an admin roster entry
	pollhub admin revoke <user-id> Deactivate an admin roster entry

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... AUTH_SECRET=... go run . serve

Or with flags:

	go run . serve -p 3318 -d "file:pollhub.db" --auth-secret dev-secret

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL or SQLite connection string
  - AUTH_SECRET (--auth-secret): Session signing secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - SITE_URL, SESSION_TTL, ALLOWED_ORIGINS (see package cliparse)

A missing required setting stops the process before it opens the database.

# Architecture

  - handlers: HTTP request handlers (auth, polls, voting, admin)
  - router: Route definitions using chi
  - middleware: Logging, CORS, CSRF guard, sessions, access policy
  - actions: Poll operations with authorization and user-facing errors
  - auth: Admin role resolution and owner/admin decisions
  - identity: Sign-up, sign-in and session tokens
  - sanitize: Poll input normalization and identifier checks
  - store: SQL persistence
  - models: Request/response and row types
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
