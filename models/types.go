// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Role values stored in user_profiles.role
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Request types

// PollRequest is the JSON body for creating or updating a poll.
// Question is accepted as an alias for Title.
type PollRequest struct {
	Title       string   `json:"title"`
	Question    string   `json:"question"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type VoteRequest struct {
	PollID      string `json:"pollId"`
	OptionIndex int    `json:"optionIndex"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response types

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type PollListResponse struct {
	Polls []Poll `json:"polls"`
}

type ShareResponse struct {
	PollID      string `json:"poll_id"`
	ShareURL    string `json:"share_url"`
	TwitterURL  string `json:"twitter_url"`
	FacebookURL string `json:"facebook_url"`
	EmailURL    string `json:"email_url"`
}

type ResultsResponse struct {
	PollID     string        `json:"poll_id"`
	TotalVotes int           `json:"total_votes"`
	Options    []OptionTally `json:"options"`
}

type OptionTally struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Votes int    `json:"votes"`
}

type SessionResponse struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

// Options is the ordered list of poll choices, persisted as a JSON array.
type Options []string

// Scan implements sql.Scanner
func (o *Options) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*o = Options{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan Options: unexpected type %T", value)
	}
	return json.Unmarshal(raw, o)
}

// Value implements driver.Valuer
func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type Poll struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Options     Options   `db:"options" json:"options"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Vote struct {
	ID          string    `db:"id" json:"id"`
	PollID      string    `db:"poll_id" json:"poll_id"`
	UserID      *string   `db:"user_id" json:"user_id"` // nil for anonymous votes
	OptionIndex int       `db:"option_index" json:"option_index"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// User is the public view of an identity issued by the auth provider
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UserProfile struct {
	UserID string `db:"user_id" json:"user_id"`
	Role   string `db:"role" json:"role"`
}

type AdminMembership struct {
	UserID    string    `db:"user_id" json:"user_id"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	GrantedAt time.Time `db:"granted_at" json:"granted_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
