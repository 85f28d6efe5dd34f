// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/quick-poll/events"
)

const (
	// broadcastBuffer is how many events may wait for the Run loop.
	broadcastBuffer = 64
	// sendBuffer is how many messages a viewer may fall behind before it
	// is dropped.
	sendBuffer = 16
)

// viewer is a registered client plus its outgoing queue. Only the viewer's
// writer goroutine writes to the client.
type viewer struct {
	client Client
	send   chan []byte
}

type unicast struct {
	client  Client
	message []byte
}

// Hub fans poll change events out to every connected viewer. All client
// bookkeeping happens on the Run goroutine. Socket writes happen on one
// goroutine per viewer and never on Run.
type Hub struct {
	clients    map[Client]*viewer
	broadcast  chan []byte
	direct     chan unicast
	register   chan Client
	unregister chan Client
	done       chan struct{}
	closeOnce  sync.Once
	count      atomic.Int64
}

func New() *Hub {
	return &Hub{
		clients:    make(map[Client]*viewer),
		broadcast:  make(chan []byte, broadcastBuffer),
		direct:     make(chan unicast),
		register:   make(chan Client),
		unregister: make(chan Client),
		done:       make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast requests until Close is
// called. Remaining clients are closed on exit.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			v := &viewer{client: client, send: make(chan []byte, sendBuffer)}
			h.clients[client] = v
			go h.writePump(v)
		case client := <-h.unregister:
			if v, ok := h.clients[client]; ok {
				h.drop(v)
			}
		case u := <-h.direct:
			if v, ok := h.clients[u.client]; ok {
				h.enqueue(v, u.message)
			}
		case message := <-h.broadcast:
			for _, v := range h.clients {
				h.enqueue(v, message)
			}
		case <-h.done:
			for _, v := range h.clients {
				h.drop(v)
			}
			h.count.Store(0)
			return
		}
		h.count.Store(int64(len(h.clients)))
	}
}

// enqueue never blocks: a viewer whose queue is full is dropped.
func (h *Hub) enqueue(v *viewer, message []byte) {
	select {
	case v.send <- message:
	default:
		slog.Warn("dropping slow live viewer", "queued", len(v.send))
		h.drop(v)
	}
}

// drop must only be called from Run.
func (h *Hub) drop(v *viewer) {
	delete(h.clients, v.client)
	close(v.send)
	v.client.Close()
}

func (h *Hub) writePump(v *viewer) {
	for message := range v.send {
		if err := v.client.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Warn("dropping live viewer", "error", err)
			h.Unregister(v.client)
			return
		}
	}
}

// Clients reports how many viewers are registered.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

func (h *Hub) Register(client Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues message for a single registered client. Unknown clients are
// ignored.
func (h *Hub) Send(ctx context.Context, client Client, message []byte) error {
	select {
	case h.direct <- unicast{client: client, message: message}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return nil
	}
}

// Broadcast queues message for every registered client. It returns as soon
// as the message is queued and does not wait for socket writes.
func (h *Hub) Broadcast(ctx context.Context, message []byte) error {
	select {
	case h.broadcast <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return nil
	}
}

// Publish lets the hub receive poll events like any other publisher.
func (h *Hub) Publish(ctx context.Context, e events.Event) error {
	body, err := e.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return h.Broadcast(ctx, body)
}

func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}
