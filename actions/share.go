// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package actions

import (
	"context"
	"net/url"
	"strings"

	"github.com/danielhkuo/pollhub/models"
	"github.com/danielhkuo/pollhub/sanitize"
)

// ShareLinks builds the public link for a poll and ready-made links for
// posting it elsewhere. siteURL is the externally visible origin.
func (p *Polls) ShareLinks(ctx context.Context, siteURL, pollID string) (*models.ShareResponse, error) {
	if !sanitize.ShareableID(pollID) {
		return nil, fail(KindValidation, msgInvalidID)
	}

	poll, err := p.GetPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	shareURL := strings.TrimRight(siteURL, "/") + "/polls/" + poll.ID
	title := sanitize.ShareText(poll.Title)

	return &models.ShareResponse{
		PollID:      poll.ID,
		ShareURL:    shareURL,
		TwitterURL:  "https://twitter.com/intent/tweet?text=" + escape("Check out this poll: "+title) + "&url=" + escape(shareURL),
		FacebookURL: "https://www.facebook.com/sharer/sharer.php?u=" + escape(shareURL),
		EmailURL: "mailto:?subject=" + escape("Poll: "+title) +
			"&body=" + escape("Hi! I'd like to share this poll with you: "+shareURL),
	}, nil
}

// escape percent-encodes s for a query value, spaces as %20
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
