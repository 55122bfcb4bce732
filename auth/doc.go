// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth decides who may change a poll.

# Admin Roles

A user is an administrator when their profile role is "admin", or failing
that, when they have an active row in the admin roster:

	res := auth.ResolveRole(ctx, roles, userID)
	switch res.Source {
	case auth.RoleSourceProfile, auth.RoleSourceRoster:
		// admin
	}

A lookup that errors for any reason other than not-found stops the
resolution with RoleSourceNone and the error in Resolution.Err. IsAdmin
wraps this into a bool that never panics and logs failures.

# Decisions

	d := auth.Authorize(ctx, roles, auth.ActionDelete, callerID, poll.UserID)
	if !d.Allowed {
		...
	}

  - owners may update and delete their polls
  - administrators may delete any poll
  - nobody else may do either

Every call re-reads roles; nothing is cached.
*/
package auth
