// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quick-poll/events"
	"github.com/danielhkuo/quick-poll/models"
	"github.com/danielhkuo/quick-poll/store"
)

// MinOptions is the smallest number of options a poll may have.
const MinOptions = 2

var (
	ErrInvalidQuestion  = errors.New("no question entered")
	ErrInvalidOptions   = errors.New("options is not a list")
	ErrTooFewOptions    = errors.New("at least 2 options required")
	ErrNoActivePoll     = errors.New("no active poll")
	ErrInvalidOptionID  = errors.New("invalid option id")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type PollService struct {
	store     store.PollStore
	publisher events.Publisher
	now       func() time.Time
}

// NewPollService returns a service over s. A nil publisher discards events.
func NewPollService(s store.PollStore, publisher events.Publisher) *PollService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &PollService{
		store:     s,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreatePoll replaces the active poll. A nil options slice means the caller
// did not supply a list at all. Validation runs before the store is touched,
// so a rejected poll leaves the current one in place.
func (s *PollService) CreatePoll(ctx context.Context, question string, options []string) (*models.Poll, error) {
	if question == "" {
		return nil, ErrInvalidQuestion
	}
	if options == nil {
		return nil, ErrInvalidOptions
	}
	if len(options) < MinOptions {
		return nil, ErrTooFewOptions
	}

	poll := &models.Poll{
		ID:        uuid.NewString(),
		Question:  question,
		Options:   make([]models.Option, len(options)),
		CreatedAt: s.now(),
	}
	for i, label := range options {
		poll.Options[i] = models.Option{ID: i + 1, Label: label}
	}

	stored, err := s.store.ReplaceAll(ctx, poll)
	if err != nil {
		return nil, unavailable(err)
	}

	slog.Info("poll created", "poll_id", stored.ID, "options", len(stored.Options))
	s.publish(ctx, events.TypePollCreated, stored, 0)
	return stored, nil
}

func (s *PollService) GetCurrentPoll(ctx context.Context) (*models.Poll, error) {
	poll, err := s.store.GetLatest(ctx)
	if errors.Is(err, store.ErrPollNotFound) {
		return nil, ErrNoActivePoll
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return poll, nil
}

// CastVote adds one vote to optionID on the active poll.
func (s *PollService) CastVote(ctx context.Context, optionID int) (*models.Poll, error) {
	poll, err := s.GetCurrentPoll(ctx)
	if err != nil {
		return nil, err
	}
	if poll.Option(optionID) == nil {
		return nil, ErrInvalidOptionID
	}

	// The poll can be reset or replaced between the read and the increment.
	updated, err := s.store.RecordVote(ctx, poll.ID, optionID)
	switch {
	case errors.Is(err, store.ErrPollNotFound):
		return nil, ErrNoActivePoll
	case errors.Is(err, store.ErrOptionNotFound):
		return nil, ErrInvalidOptionID
	case err != nil:
		return nil, unavailable(err)
	}

	slog.Info("vote recorded", "poll_id", updated.ID, "option_id", optionID)
	s.publish(ctx, events.TypeVoteCast, updated, optionID)
	return updated, nil
}

func (s *PollService) ResetPoll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return unavailable(err)
	}

	slog.Info("poll reset")
	s.publish(ctx, events.TypePollReset, nil, 0)
	return nil
}

// publish never fails the caller; the poll change is already stored.
func (s *PollService) publish(ctx context.Context, eventType string, poll *models.Poll, optionID int) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:     eventType,
		Poll:     poll,
		OptionID: optionID,
		At:       s.now(),
	})
	if err != nil {
		slog.Warn("failed to publish poll event", "type", eventType, "error", err)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
