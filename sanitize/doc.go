// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sanitize normalizes untrusted poll input before it reaches the store.

# Normalization

	fields, err := sanitize.Normalize(sanitize.PollInput{
		Title:   r.FormValue("title"),
		Options: r.Form["options"],
	})
	if errors.Is(err, sanitize.ErrInvalidPoll) {
		// show sanitize.InvalidPollMessage
	}

Blank options are dropped first. Every remaining field is reduced to its text
content with the HTML tokenizer from golang.org/x/net/html, then trimmed.
Input is rejected when the title is empty, fewer than two options remain, or
an option was nothing but markup.

# Identifiers

ValidIdentifier accepts ids made of letters, digits, '-' and '_' and is
checked before any id-keyed mutation. ShareableID is stricter (no '_') and
guards share links.
*/
package sanitize
