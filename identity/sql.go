// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/pollhub/models"
	"github.com/danielhkuo/pollhub/store"
)

const issuer = "pollhub"

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// SQLProvider stores users in the users table and issues HS256 session
// tokens. Signed-out tokens are kept in revoked_sessions until they expire.
type SQLProvider struct {
	db     *sqlx.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func NewSQLProvider(db *sqlx.DB, secret []byte, ttl time.Duration) *SQLProvider {
	return &SQLProvider{
		db:     db,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		subs:   make(map[int]func(Event)),
	}
}

type userRow struct {
	models.User
	PasswordHash string `db:"password_hash"`
}

func (p *SQLProvider) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	if len(password) > MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:        store.NewID(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		CreatedAt: p.now().UTC(),
	}

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin sign up: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), user.ID, user.Email, user.Name, string(hash), user.CreatedAt)
	if err != nil {
		if errors.Is(store.CastErr(err), store.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO user_profiles (user_id, role) VALUES (?, ?)
	`), user.ID, models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sign up: %w", err)
	}

	p.publish(Event{Type: EventUserSignedUp, User: &user})
	return &user, nil
}

func (p *SQLProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var row userRow
	err := p.db.GetContext(ctx, &row, p.db.Rebind(`
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = ?
	`), email)
	if err != nil {
		if errors.Is(store.CastErr(err), store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := p.issue(row.User)
	if err != nil {
		return nil, err
	}

	p.publish(Event{Type: EventSignedIn, User: &sess.User, Session: sess})
	return sess, nil
}

func (p *SQLProvider) issue(user models.User) (*Session, error) {
	now := p.now().UTC()
	expires := now.Add(p.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			ID:        store.NewID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &Session{Token: signed, User: user, ExpiresAt: expires.Truncate(time.Second)}, nil
}

func (p *SQLProvider) parse(token string) (*claims, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || c.Subject == "" || c.ID == "" {
		return nil, ErrNoSession
	}
	return &c, nil
}

func (p *SQLProvider) GetSession(ctx context.Context, token string) (*Session, error) {
	c, err := p.parse(token)
	if err != nil {
		return nil, err
	}

	var revoked int
	err = p.db.GetContext(ctx, &revoked, p.db.Rebind(`
		SELECT COUNT(*) FROM revoked_sessions WHERE jti = ?
	`), c.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked > 0 {
		return nil, ErrNoSession
	}

	var user models.User
	err = p.db.GetContext(ctx, &user, p.db.Rebind(`
		SELECT id, email, name, created_at FROM users WHERE id = ?
	`), c.Subject)
	if err != nil {
		if errors.Is(store.CastErr(err), store.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	return &Session{Token: token, User: user, ExpiresAt: c.ExpiresAt.Time}, nil
}

func (p *SQLProvider) GetUser(ctx context.Context, token string) (*models.User, error) {
	sess, err := p.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return &sess.User, nil
}

// SignOut revokes the token. Signing out twice is not an error.
func (p *SQLProvider) SignOut(ctx context.Context, token string) error {
	c, err := p.parse(token)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, p.db.Rebind(`
		INSERT INTO revoked_sessions (jti, user_id, expires_at, revoked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (jti) DO NOTHING
	`), c.ID, c.Subject, c.ExpiresAt.Time.UTC(), p.now().UTC())
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	p.publish(Event{Type: EventSignedOut, User: &models.User{ID: c.Subject, Email: c.Email, Name: c.Name}})
	return nil
}

// PurgeRevoked deletes revocation entries for tokens that have expired
func (p *SQLProvider) PurgeRevoked(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, p.db.Rebind(`
		DELETE FROM revoked_sessions WHERE expires_at < ?
	`), p.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge revoked sessions: %w", err)
	}
	return res.RowsAffected()
}

func (p *SQLProvider) Subscribe(fn func(Event)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

// publish calls subscribers in registration order on the caller's goroutine
func (p *SQLProvider) publish(ev Event) {
	p.mu.Lock()
	ids := make([]int, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, p.subs[id])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
