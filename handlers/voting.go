// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/pollhub/actions"
	"github.com/danielhkuo/pollhub/middleware"
)

type VotingHandler struct {
	polls *actions.Polls
}

func NewVotingHandler(polls *actions.Polls) *VotingHandler {
	return &VotingHandler{polls: polls}
}

// SubmitVote handles POST /vote. No session is required.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	req, err := voteInput(r)
	if errors.Is(err, errBadOptionIndex) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please select a valid option.")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vote, err := h.polls.SubmitVote(r.Context(), req.PollID, req.OptionIndex)
	if err != nil {
		middleware.ActionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, vote)
}
