// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollhub API.

# Route Registration

NewRouter creates a configured chi router with all endpoints:

	r := router.NewRouter(db, cfg, provider)

# Middleware

Every request passes through, in order: request id, real IP, panic
recovery, request logging, CORS, the CSRF guard and session resolution.
Routes in the guarded group additionally require an identity unless their
path is public (see middleware.PublicPrefixes).

# Endpoints

Open (outside the access policy):

	GET  /health
	POST /vote   - Cast a vote, anonymous or signed in

Authentication (public prefix):

	POST /api/auth/register
	POST /api/auth/login
	POST /api/auth/logout
	GET  /api/auth/session

Polls (session required):

	GET    /polls              - Caller's polls
	POST   /polls              - Create poll
	GET    /polls/{id}         - Poll details
	PUT    /polls/{id}         - Update poll (owner only)
	DELETE /polls/{id}         - Delete poll (owner or admin)
	GET    /polls/{id}/share   - Share links
	GET    /polls/{id}/results - Vote tally

Admin (session required, admin checked per request):

	GET    /admin/polls      - All polls
	DELETE /admin/polls/{id} - Delete any poll
*/
package router
