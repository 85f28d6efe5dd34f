// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quick-poll/db"
	"github.com/danielhkuo/quick-poll/events"
	"github.com/danielhkuo/quick-poll/models"
	"github.com/danielhkuo/quick-poll/store"
)

// SetupTestStore creates a SQL store on a fresh sqlite database in a
// temporary directory. The database is closed when the test ends.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	s := store.NewSQLStore(conn)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

// NewTestPoll builds an unsaved poll with 1-based option ids and no votes.
func NewTestPoll(question string, labels ...string) *models.Poll {
	p := &models.Poll{
		ID:        uuid.NewString(),
		Question:  question,
		CreatedAt: time.Now().UTC(),
	}
	for i, label := range labels {
		p.Options = append(p.Options, models.Option{ID: i + 1, Label: label})
	}
	return p
}

// CreateTestPoll stores a new poll directly, bypassing the service.
func CreateTestPoll(t *testing.T, s store.PollStore, question string, labels ...string) *models.Poll {
	t.Helper()

	p, err := s.ReplaceAll(context.Background(), NewTestPoll(question, labels...))
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return p
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.Err
}

func (p *RecordingPublisher) Close() error {
	return nil
}

// Types returns the types of the recorded events in publish order.
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// Events returns a copy of the recorded events.
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// MakeRequest creates an HTTP test request. A string body is sent as-is.
func MakeRequest(method, path string, body any) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status code and the {"error"} message.
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
}
