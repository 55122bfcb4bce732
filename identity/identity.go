// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/pollhub/models"
)

// Error is a provider failure whose Message may be shown to users
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNoSession          = &Error{Code: "no_session", Message: "Auth session missing!"}
	ErrInvalidCredentials = &Error{Code: "invalid_credentials", Message: "Invalid login credentials"}
	ErrInvalidEmail       = &Error{Code: "validation_failed", Message: "Unable to validate email address: invalid format"}
	ErrWeakPassword       = &Error{Code: "weak_password", Message: "Password should be at least 6 characters"}
	ErrPasswordTooLong    = &Error{Code: "weak_password", Message: "Password cannot be longer than 72 characters"}
	ErrUserExists         = &Error{Code: "user_already_exists", Message: "User already registered"}
)

// MinPasswordLength is the shortest password SignUp accepts
const MinPasswordLength = 6

// MaxPasswordLength is the longest password, in bytes, bcrypt can hash
const MaxPasswordLength = 72

// Message returns the user-facing text for a provider error. Errors that do
// not come from the provider get a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An unexpected error occurred. Please try again."
}

// Session is an authenticated session issued by the provider
type Session struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// EventType names an auth-state change
type EventType string

const (
	EventSignedIn     EventType = "SIGNED_IN"
	EventSignedOut    EventType = "SIGNED_OUT"
	EventUserSignedUp EventType = "USER_SIGNED_UP"
)

// Event is delivered to subscribers on every auth-state change.
// Session is nil for EventSignedOut and EventUserSignedUp.
type Event struct {
	Type    EventType
	User    *models.User
	Session *Session
}

// Provider issues and validates sessions
type Provider interface {
	// GetUser returns the user behind token, ErrNoSession when there is none
	GetUser(ctx context.Context, token string) (*models.User, error)
	GetSession(ctx context.Context, token string) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	SignOut(ctx context.Context, token string) error
	// Subscribe registers fn for auth-state changes until unsubscribe is called
	Subscribe(fn func(Event)) (unsubscribe func())
}
