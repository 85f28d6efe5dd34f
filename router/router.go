// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quick-poll/handlers"
	"github.com/danielhkuo/quick-poll/hub"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/service"
)

func NewRouter(svc *service.PollService, liveHub *hub.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	pollHandler := handlers.NewPollHandler(svc)
	liveHandler := handlers.NewLiveHandler(svc, liveHub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Active poll
	mux.HandleFunc("POST /poll", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /poll", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /vote", middleware.WithLogging(pollHandler.Vote))
	mux.HandleFunc("POST /reset", middleware.WithLogging(pollHandler.Reset))

	// Live updates
	mux.HandleFunc("GET /poll/live", middleware.WithLogging(liveHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quick-poll API v1"))
	})

	return mux
}
