// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/pollhub/actions"
	"github.com/danielhkuo/pollhub/cliparse"
	"github.com/danielhkuo/pollhub/middleware"
	"github.com/danielhkuo/pollhub/models"
)

type PollHandler struct {
	polls *actions.Polls
	cfg   cliparse.Config
}

func NewPollHandler(polls *actions.Polls, cfg cliparse.Config) *PollHandler {
	return &PollHandler{polls: polls, cfg: cfg}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.GetUserPolls(r.Context())
	if err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.PollListResponse{Polls: polls})
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	in, err := pollInput(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	poll, err := h.polls.CreatePoll(r.Context(), in)
	if err != nil {
		middleware.ActionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{PollID: poll.ID})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.polls.GetPollByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// UpdatePoll handles PUT /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	in, err := pollInput(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.polls.UpdatePoll(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll updated"})
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.polls.DeletePoll(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll deleted"})
}

// SharePoll handles GET /polls/{id}/share
func (h *PollHandler) SharePoll(w http.ResponseWriter, r *http.Request) {
	links, err := h.polls.ShareLinks(r.Context(), h.cfg.SiteURL, chi.URLParam(r, "id"))
	if err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, links)
}

// GetResults handles GET /polls/{id}/results
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.polls.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, results)
}
