// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/danielhkuo/quick-poll/models"
)

type stubPublisher struct {
	published []Event
	err       error
	closed    bool
}

func (p *stubPublisher) Publish(_ context.Context, e Event) error {
	p.published = append(p.published, e)
	return p.err
}

func (p *stubPublisher) Close() error {
	p.closed = true
	return p.err
}

func TestEventEncode(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("vote event", func(t *testing.T) {
		e := Event{
			Type:     TypeVoteCast,
			Poll:     &models.Poll{ID: "p1", Question: "Color?", Options: []models.Option{{ID: 2, Label: "Blue", Votes: 1}}, CreatedAt: at},
			OptionID: 2,
			At:       at,
		}
		body, err := e.Encode()
		if err != nil {
			t.Fatal(err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Fatal(err)
		}
		if decoded["type"] != TypeVoteCast {
			t.Errorf("Expected type %s, got %v", TypeVoteCast, decoded["type"])
		}
		if decoded["optionId"] != float64(2) {
			t.Errorf("Expected optionId 2, got %v", decoded["optionId"])
		}
		poll := decoded["poll"].(map[string]any)
		if poll["question"] != "Color?" {
			t.Errorf("Expected question 'Color?', got %v", poll["question"])
		}
	})

	t.Run("reset event has null poll and no option", func(t *testing.T) {
		body, err := Event{Type: TypePollReset, At: at}.Encode()
		if err != nil {
			t.Fatal(err)
		}
		expected := `{"type":"poll.reset","poll":null,"at":"2025-01-02T03:04:05Z"}`
		if string(body) != expected {
			t.Errorf("Expected %s, got %s", expected, body)
		}
	})
}

func TestFanout(t *testing.T) {
	failing := &stubPublisher{err: errors.New("broker down")}
	healthy := &stubPublisher{}
	f := Fanout{failing, healthy}

	err := f.Publish(context.Background(), Event{Type: TypePollCreated})
	if err == nil || err.Error() != "broker down" {
		t.Errorf("Expected joined broker error, got %v", err)
	}
	if len(healthy.published) != 1 {
		t.Error("Expected healthy publisher to receive the event despite the failure")
	}

	if err := f.Close(); err == nil {
		t.Error("Expected close error from failing publisher")
	}
	if !healthy.closed || !failing.closed {
		t.Error("Expected every publisher to be closed")
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), Event{}); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestAMQPPublisher(t *testing.T) {
	url := os.Getenv("TEST_RABBITMQ_URL")
	if url == "" {
		t.Skip("TEST_RABBITMQ_URL not set")
	}

	p, err := DialAMQP(url, "quick-poll-test")
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer p.Close()

	if err := p.Publish(context.Background(), Event{Type: TypePollReset, At: time.Now()}); err != nil {
		t.Errorf("Publish failed: %v", err)
	}
}

func TestRedisPublisher(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_URL")
	if addr == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	p, err := ConnectRedis(ctx, addr, "quick-poll-test")
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer p.Close()

	sub := p.client.Subscribe(ctx, "quick-poll-test")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := p.Publish(ctx, Event{Type: TypePollReset, At: time.Now()}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var e Event
		if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		if e.Type != TypePollReset {
			t.Errorf("Expected %s, got %s", TypePollReset, e.Type)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for redis message")
	}
}
