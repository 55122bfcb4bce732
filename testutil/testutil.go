// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollhub/cliparse"
	"github.com/danielhkuo/pollhub/db"
	"github.com/danielhkuo/pollhub/identity"
	"github.com/danielhkuo/pollhub/models"
	"github.com/danielhkuo/pollhub/store"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// TestOrigin is the site origin used by test requests that pass the CSRF guard
const TestOrigin = "http://localhost:3318"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(TestDBURL, db.TypeSQLite)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.CreateSchema(conn), "failed to create schema")
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   db.TypeSQLite,
		AuthSecret:     "test-auth-secret",
		SiteURL:        TestOrigin,
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{TestOrigin},
	}
}

// NewTestProvider returns an identity provider backed by the test database
func NewTestProvider(t *testing.T, conn *sqlx.DB) *identity.SQLProvider {
	t.Helper()
	cfg := GetTestConfig()
	return identity.NewSQLProvider(conn, []byte(cfg.AuthSecret), cfg.SessionTTL)
}

// Env bundles the pieces a router needs in tests
type Env struct {
	DB       *sqlx.DB
	Config   cliparse.Config
	Provider *identity.SQLProvider
}

// NewEnv sets up a test database, configuration and identity provider
func NewEnv(t *testing.T) *Env {
	t.Helper()
	conn := SetupTestDB(t)
	return &Env{
		DB:       conn,
		Config:   GetTestConfig(),
		Provider: NewTestProvider(t, conn),
	}
}

// CreateTestUser registers a user and signs them in, returning the user and
// a valid session token
func CreateTestUser(t *testing.T, p identity.Provider, email string) (*models.User, string) {
	t.Helper()
	ctx := context.Background()

	user, err := p.SignUp(ctx, email, "password123", "Test User")
	require.NoError(t, err, "failed to sign up test user")

	sess, err := p.SignInWithPassword(ctx, email, "password123")
	require.NoError(t, err, "failed to sign in test user")

	return user, sess.Token
}

// CreateTestPoll inserts a poll owned by ownerID with the given options
func CreateTestPoll(t *testing.T, conn *sqlx.DB, ownerID string, options ...string) *models.Poll {
	t.Helper()
	if len(options) == 0 {
		options = []string{"Red", "Blue"}
	}

	poll, err := store.NewSQLStore(conn).CreatePoll(context.Background(), ownerID, store.PollFields{
		Title:       "Test Poll",
		Description: "A test poll",
		Options:     options,
	})
	require.NoError(t, err, "failed to create test poll")
	return poll
}

// SetProfileRole writes or replaces a user_profiles row
func SetProfileRole(t *testing.T, conn *sqlx.DB, userID, role string) {
	t.Helper()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO user_profiles (user_id, role) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET role = excluded.role
	`), userID, role)
	require.NoError(t, err, "failed to set profile role")
}

// AddAdminMember writes an admin_users row
func AddAdminMember(t *testing.T, conn *sqlx.DB, userID string, active bool) {
	t.Helper()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO admin_users (user_id, is_active, granted_at) VALUES (?, ?, ?)
	`), userID, active, time.Now().UTC())
	require.NoError(t, err, "failed to add admin member")
}

// CountVotes returns the number of vote rows for a poll
func CountVotes(t *testing.T, conn *sqlx.DB, pollID string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.Get(&n, conn.Rebind(`SELECT COUNT(*) FROM votes WHERE poll_id = ?`), pollID))
	return n
}

// MakeRequest creates an HTTP test request with a JSON body
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// SameOrigin returns headers that satisfy the CSRF guard, plus a bearer
// token when one is given
func SameOrigin(token string) map[string]string {
	h := map[string]string{
		"Origin":  TestOrigin,
		"Referer": TestOrigin + "/polls",
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	require.Equal(t, expected, w.Code, "unexpected status. Body: %s", w.Body.String())
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "failed to decode JSON response")
}
