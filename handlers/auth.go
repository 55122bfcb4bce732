// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollhub/identity"
	"github.com/danielhkuo/pollhub/middleware"
	"github.com/danielhkuo/pollhub/models"
)

// LandingPath is where signed-in browsers are sent after login
const LandingPath = "/polls"

type AuthHandler struct {
	provider identity.Provider
}

func NewAuthHandler(provider identity.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// providerError writes a provider failure. Only identity errors reach the
// client verbatim.
func providerError(w http.ResponseWriter, err error, status int) {
	var ie *identity.Error
	if !errors.As(err, &ie) {
		slog.Error("identity provider failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, identity.Message(err))
		return
	}
	if errors.Is(err, identity.ErrUserExists) {
		status = http.StatusConflict
	}
	middleware.ErrorResponse(w, status, ie.Message)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := credentials(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.provider.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		providerError(w, err, http.StatusBadRequest)
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
// Form posts are redirected to the landing page; JSON clients get the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := credentials(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.provider.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		providerError(w, err, http.StatusUnauthorized)
		return
	}

	middleware.SetSessionCookie(w, r, sess)
	if isForm(r) {
		http.Redirect(w, r, LandingPath, http.StatusSeeOther)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt,
		Token:     sess.Token,
	})
}

// Logout handles POST /api/auth/logout. Logging out without a session
// still clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		err := h.provider.SignOut(r.Context(), token)
		if err != nil && !errors.Is(err, identity.ErrNoSession) {
			providerError(w, err, http.StatusBadRequest)
			return
		}
	}

	middleware.ClearSessionCookie(w, r)
	if isForm(r) {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Signed out"})
}

// Session handles GET /api/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := identity.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, identity.ErrNoSession.Message)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt,
	})
}
