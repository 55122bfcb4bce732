// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollhub/middleware"
	"github.com/danielhkuo/pollhub/models"
	"github.com/danielhkuo/pollhub/sanitize"
)

var errBadOptionIndex = errors.New("invalid option index")

// isForm reports whether the request body is an HTML form
func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

func parseForm(r *http.Request) error {
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		return r.ParseMultipartForm(middleware.MaxBodyBytes)
	}
	return r.ParseForm()
}

// pollInput reads title|question, description and repeated options from a
// form or a JSON body
func pollInput(r *http.Request) (sanitize.PollInput, error) {
	if isForm(r) {
		if err := parseForm(r); err != nil {
			return sanitize.PollInput{}, err
		}
		return sanitize.PollInput{
			Title:       r.PostForm.Get("title"),
			Question:    r.PostForm.Get("question"),
			Description: r.PostForm.Get("description"),
			Options:     r.PostForm["options"],
		}, nil
	}

	var req models.PollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		return sanitize.PollInput{}, err
	}
	return sanitize.PollInput{
		Title:       req.Title,
		Question:    req.Question,
		Description: req.Description,
		Options:     req.Options,
	}, nil
}

// voteInput reads pollId and optionIndex. A missing or non-numeric index is
// errBadOptionIndex, never option 0.
func voteInput(r *http.Request) (models.VoteRequest, error) {
	if isForm(r) {
		if err := parseForm(r); err != nil {
			return models.VoteRequest{}, err
		}
		idx, err := strconv.Atoi(r.PostForm.Get("optionIndex"))
		if err != nil {
			return models.VoteRequest{}, errBadOptionIndex
		}
		return models.VoteRequest{PollID: r.PostForm.Get("pollId"), OptionIndex: idx}, nil
	}

	var req struct {
		PollID      string `json:"pollId"`
		OptionIndex *int   `json:"optionIndex"`
	}
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		return models.VoteRequest{}, err
	}
	if req.OptionIndex == nil {
		return models.VoteRequest{}, errBadOptionIndex
	}
	return models.VoteRequest{PollID: req.PollID, OptionIndex: *req.OptionIndex}, nil
}

func credentials(r *http.Request) (models.RegisterRequest, error) {
	if isForm(r) {
		if err := parseForm(r); err != nil {
			return models.RegisterRequest{}, err
		}
		return models.RegisterRequest{
			Email:    r.PostForm.Get("email"),
			Password: r.PostForm.Get("password"),
			Name:     r.PostForm.Get("name"),
		}, nil
	}

	var req models.RegisterRequest
	err := middleware.ParseJSONBody(r, &req)
	return req, err
}
