// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quick-poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, liveHub)

# Endpoints

	GET  /health    - Health check
	GET  /          - Banner
	POST /poll      - Create (replace) the active poll
	GET  /poll      - Fetch the active poll
	POST /vote      - Vote for an option
	POST /reset     - Remove the active poll
	GET  /poll/live - Websocket stream of poll changes

Poll routes are wrapped with middleware.WithLogging. CORS is applied to the
whole mux in main.
*/
package router
