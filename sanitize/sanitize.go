// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sanitize

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InvalidPollMessage is the user-facing text for ErrInvalidPoll
const InvalidPollMessage = "Please provide a valid title and at least two non-empty options."

// ErrInvalidPoll is returned when poll input fails validation
var ErrInvalidPoll = errors.New("invalid poll input")

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	shareIDPattern    = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// PollInput is raw, untrusted poll input. Question is used when Title is empty.
type PollInput struct {
	Title       string
	Question    string
	Description string
	Options     []string
}

// Fields is poll input that passed normalization
type Fields struct {
	Title       string
	Description string
	Options     []string
}

// Normalize drops blank options, strips markup from every field, trims
// whitespace and validates what is left. An option that is nothing but
// markup fails validation.
func Normalize(in PollInput) (Fields, error) {
	title := in.Title
	if strings.TrimSpace(title) == "" {
		title = in.Question
	}

	out := Fields{
		Title:       StripTags(title),
		Description: StripTags(in.Description),
		Options:     make([]string, 0, len(in.Options)),
	}
	for _, opt := range in.Options {
		if strings.TrimSpace(opt) == "" {
			continue
		}
		out.Options = append(out.Options, StripTags(opt))
	}

	if out.Title == "" || len(out.Options) < 2 {
		return Fields{}, ErrInvalidPoll
	}
	for _, opt := range out.Options {
		if opt == "" {
			return Fields{}, ErrInvalidPoll
		}
	}
	return out, nil
}

// StripTags returns the text content of s with all markup removed and
// surrounding whitespace trimmed. Script and style bodies are dropped.
// Entities are decoded exactly once, so "&amp;lt;" becomes "&lt;"; markup
// produced by that decoding is stripped as well.
func StripTags(s string) string {
	s = stripMarkup(s)
	if decoded := html.UnescapeString(s); decoded != s {
		s = stripMarkup(decoded)
	}
	return strings.TrimSpace(s)
}

// stripMarkup removes tags until none are left, leaving entities encoded
func stripMarkup(s string) string {
	for range 8 {
		next := textContent(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func textContent(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way keep what was read
			return b.String()
		case html.StartTagToken:
			if isRawText(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawText(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Raw())
			}
		}
	}
}

func isRawText(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch atom.Lookup(name) {
	case atom.Script, atom.Style:
		return true
	}
	return false
}

// ValidIdentifier reports whether id is safe to use as a poll id in a query
func ValidIdentifier(id string) bool {
	return identifierPattern.MatchString(id)
}

// ShareableID reports whether id may be embedded in a share link
func ShareableID(id string) bool {
	return shareIDPattern.MatchString(id)
}

// ShareText renders s as single-line plain text for share links
func ShareText(s string) string {
	return strings.Join(strings.Fields(StripTags(s)), " ")
}
