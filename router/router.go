// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/pollhub/actions"
	"github.com/danielhkuo/pollhub/cliparse"
	"github.com/danielhkuo/pollhub/handlers"
	"github.com/danielhkuo/pollhub/identity"
	"github.com/danielhkuo/pollhub/middleware"
	"github.com/danielhkuo/pollhub/store"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config, provider identity.Provider) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogging)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.CSRF)
	r.Use(middleware.Session(provider))

	// Initialize handlers
	polls := actions.NewPolls(store.NewSQLStore(db))
	authHandler := handlers.NewAuthHandler(provider)
	pollHandler := handlers.NewPollHandler(polls, cfg)
	votingHandler := handlers.NewVotingHandler(polls)
	adminHandler := handlers.NewAdminHandler(polls)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting (anonymous allowed)
	r.Post("/vote", votingHandler.SubmitVote)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity)

		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Post("/", pollHandler.CreatePoll)
			r.Get("/{id}", pollHandler.GetPoll)
			r.Put("/{id}", pollHandler.UpdatePoll)
			r.Delete("/{id}", pollHandler.DeletePoll)
			r.Get("/{id}/share", pollHandler.SharePoll)
			r.Get("/{id}/results", pollHandler.GetResults)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/polls", adminHandler.ListPolls)
			r.Delete("/polls/{id}", adminHandler.DeletePoll)
		})

		// Root endpoint
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pollhub API v1"))
		})
	})

	return r
}
