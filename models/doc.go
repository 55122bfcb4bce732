// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - PollRequest: title (or question), description, options
  - VoteRequest: pollId, optionIndex
  - RegisterRequest: email, password, name
  - LoginRequest: email, password

# Response Types

  - CreatePollResponse: poll_id
  - PollListResponse: polls
  - ShareResponse: share_url plus social links
  - ResultsResponse: per-option vote tallies
  - SessionResponse: user, expires_at
  - ErrorResponse: error, message

# Domain Types

  - Poll: owner, title, description, ordered options
  - Vote: option index, optional voter
  - User: identity issued by the auth provider
  - UserProfile, AdminMembership: inputs to the admin role check

Options is stored as a JSON array so the same column works on PostgreSQL
(JSONB) and SQLite (TEXT).
*/
package models
