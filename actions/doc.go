// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package actions implements the poll operations users can trigger.

Each operation reads the caller from the context (see identity.WithUser),
validates input, authorizes, and only then touches the store. Nothing is
written when any step before the store call fails.

# Operations

	polls := actions.NewPolls(store.NewSQLStore(conn))

	poll, err := polls.CreatePoll(ctx, sanitize.PollInput{...})
	err = polls.UpdatePoll(ctx, id, sanitize.PollInput{...}) // owner only
	err = polls.DeletePoll(ctx, id)                          // owner or admin
	vote, err := polls.SubmitVote(ctx, id, optionIndex)      // anyone
	all, err := polls.ListAllPolls(ctx)                      // admin only

# Errors

Every failure is an *Error carrying a Kind and a message that can be shown
as-is. Store failures keep the driver message and wrap the store error:

	var ae *actions.Error
	if errors.As(err, &ae) {
		w.WriteHeader(ae.Status())
	}

A poll that is missing and a poll the caller may not see produce the same
"Poll not found or access denied." message on mutations.
*/
package actions
