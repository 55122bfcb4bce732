// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity issues and validates user sessions.

# Provider

Provider is everything the rest of the service knows about authentication:

	sess, err := p.SignInWithPassword(ctx, email, password)
	if err != nil {
		msg := identity.Message(err) // "Invalid login credentials"
	}
	user, err := p.GetUser(ctx, sess.Token)

SQLProvider is the bundled implementation. Passwords are hashed with bcrypt.
Sessions are HS256 JWTs carrying the user id as subject and a random token id.
SignOut records the token id in revoked_sessions; GetSession rejects revoked,
expired or foreign tokens with ErrNoSession.

# Auth-state Events

Subscribe delivers SIGNED_IN, SIGNED_OUT and USER_SIGNED_UP events
synchronously, in subscription order. Cell is a small consumer that tracks the
most recent identity:

	cell := identity.Watch(p)
	defer cell.Close()
	if u := cell.Get(); u != nil {
		...
	}

# Request Context

The HTTP layer resolves the session once per request and stores it with
WithSession. Handlers read it back with CurrentUser or SessionFromContext.
*/
package identity
