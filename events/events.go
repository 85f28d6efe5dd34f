// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/danielhkuo/quick-poll/models"
)

// Event types
const (
	TypePollCreated = "poll.created"
	TypeVoteCast    = "poll.voted"
	TypePollReset   = "poll.reset"

	// Sent once to a live viewer when it connects.
	TypeSnapshot = "poll.snapshot"
)

// Event describes a change to the active poll. Poll is nil for resets.
type Event struct {
	Type     string       `json:"type"`
	Poll     *models.Poll `json:"poll"`
	OptionID int          `json:"optionId,omitempty"`
	At       time.Time    `json:"at"`
}

// Encode returns the JSON wire form shared by every publisher.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error {
	return nil
}

func (Nop) Close() error {
	return nil
}

// Fanout delivers each event to every publisher. A failing publisher does
// not stop delivery to the rest.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, p := range f {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
