// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/pollhub/actions"
	"github.com/danielhkuo/pollhub/middleware"
	"github.com/danielhkuo/pollhub/models"
)

// AccessDeniedPath is where non-admins are sent from the admin panel
const AccessDeniedPath = "/polls?error=access-denied"

type AdminHandler struct {
	polls *actions.Polls
}

func NewAdminHandler(polls *actions.Polls) *AdminHandler {
	return &AdminHandler{polls: polls}
}

// ListPolls handles GET /admin/polls
func (h *AdminHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.ListAllPolls(r.Context())
	switch actions.KindOf(err) {
	case 0:
		middleware.JSONResponse(w, http.StatusOK, models.PollListResponse{Polls: polls})
	case actions.KindAuthRequired:
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	case actions.KindDenied:
		http.Redirect(w, r, AccessDeniedPath, http.StatusSeeOther)
	default:
		middleware.ActionError(w, err)
	}
}

// DeletePoll handles DELETE /admin/polls/{id}
func (h *AdminHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.polls.DeletePoll(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll deleted"})
}
