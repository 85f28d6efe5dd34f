// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/quick-poll/events"
	"github.com/danielhkuo/quick-poll/hub"
	"github.com/danielhkuo/quick-poll/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	svc *service.PollService
	hub *hub.Hub
}

func NewLiveHandler(svc *service.PollService, h *hub.Hub) *LiveHandler {
	return &LiveHandler{svc: svc, hub: h}
}

// Stream handles GET /poll/live
// Sends a poll.snapshot message on connect, then every poll change event.
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	// Registered before the snapshot is read, so no change can fall
	// between the two.
	client := hub.NewWebsocketClient(conn)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	snapshot := events.Event{Type: events.TypeSnapshot, At: time.Now().UTC()}
	poll, err := h.svc.GetCurrentPoll(r.Context())
	if err != nil && !errors.Is(err, service.ErrNoActivePoll) {
		slog.Error("failed to get poll for live viewer", "error", err)
	}
	snapshot.Poll = poll

	body, err := snapshot.Encode()
	if err == nil {
		err = h.hub.Send(r.Context(), client, body)
	}
	if err != nil {
		slog.Warn("failed to send poll snapshot", "error", err)
		return
	}

	// Viewers only listen; reading detects the close.
	for {
		if _, _, err := client.ReadMessage(); err != nil {
			return
		}
	}
}
