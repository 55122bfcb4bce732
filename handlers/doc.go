// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollhub API.

# Handler Types

Each handler is a struct built by a constructor:

  - AuthHandler: Registration, login, logout and the current session
  - PollHandler: Poll CRUD, share links and results
  - VotingHandler: Vote submission
  - AdminHandler: Listing and deleting any poll

	polls := actions.NewPolls(store.NewSQLStore(db))
	pollHandler := handlers.NewPollHandler(polls, cfg)

Handlers only decode input and encode output. Authorization, validation
and persistence happen in package actions, whose errors are written with
middleware.ActionError.

# Input

Every mutating endpoint accepts either a JSON body or an HTML form
(application/x-www-form-urlencoded or multipart/form-data). Poll forms use
title (or question), description and a repeated options field. Vote forms
use pollId and optionIndex; a non-numeric index, or a JSON body with no
optionIndex, is rejected with "Please select a valid option."

# Browser Redirects

Form submissions get redirects instead of JSON:

	POST /api/auth/login  → 303 /polls
	POST /api/auth/logout → 303 /login

GET /admin/polls redirects non-admins to /polls?error=access-denied for both
kinds of client.

# Sessions

Login sets an HttpOnly session cookie and, for JSON clients, also returns
the token so it can be sent as a Bearer header. Logout revokes the token
and clears the cookie even when no session was active.
*/
package handlers
