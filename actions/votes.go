// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package actions

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/pollhub/identity"
	"github.com/danielhkuo/pollhub/models"
)

// SubmitVote records a vote for optionIndex. Signed-in voters are recorded;
// everyone else votes anonymously.
func (p *Polls) SubmitVote(ctx context.Context, pollID string, optionIndex int) (*models.Vote, error) {
	poll, err := p.GetPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return nil, fail(KindValidation, msgInvalidOption)
	}

	var voterID *string
	if user := identity.CurrentUser(ctx); user != nil {
		voterID = &user.ID
	}

	vote, err := p.store.InsertVote(ctx, poll.ID, voterID, optionIndex)
	if err != nil {
		slog.Error("failed to record vote", "poll_id", poll.ID, "error", err)
		return nil, storeErr(err)
	}

	slog.Info("vote recorded", "poll_id", poll.ID, "option_index", optionIndex, "anonymous", voterID == nil)
	return vote, nil
}

// Results tallies the votes of a poll. Every option is listed, including
// options nobody voted for.
func (p *Polls) Results(ctx context.Context, pollID string) (*models.ResultsResponse, error) {
	poll, err := p.GetPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	counts, err := p.store.CountVotes(ctx, poll.ID)
	if err != nil {
		slog.Error("failed to count votes", "poll_id", poll.ID, "error", err)
		return nil, storeErr(err)
	}

	resp := &models.ResultsResponse{
		PollID:  poll.ID,
		Options: make([]models.OptionTally, len(poll.Options)),
	}
	for i, label := range poll.Options {
		resp.Options[i] = models.OptionTally{Index: i, Label: label, Votes: counts[i]}
		resp.TotalVotes += counts[i]
	}
	return resp, nil
}
