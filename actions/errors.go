// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package actions

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/pollhub/store"
)

// Kind classifies an operation failure
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthRequired
	KindDenied
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthRequired:
		return "auth_required"
	case KindDenied:
		return "denied"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is returned by every operation in this package. Message is safe to
// show to users.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error to an HTTP status code
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthRequired:
		return http.StatusUnauthorized
	case KindDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	}
	if errors.Is(e.Err, store.ErrConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// KindOf returns the Kind of err, or 0 when err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func fail(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func storeErr(err error) *Error {
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}

const (
	msgInvalidID      = "Invalid poll ID format."
	msgPollNotFound   = "Poll not found."
	msgNotFoundOrDeny = "Poll not found or access denied."
	msgNotAuthed      = "Not authenticated"
	msgLoginToCreate  = "You must be logged in to create a poll."
	msgLoginToUpdate  = "You must be logged in to update a poll."
	msgLoginToDelete  = "You must be logged in to delete a poll."
	msgDeniedUpdate   = "You are not allowed to update this poll."
	msgDeniedDelete   = "You are not authorized to delete this poll."
	msgAdminOnly      = "Access denied."
	msgInvalidOption  = "Please select a valid option."
)
