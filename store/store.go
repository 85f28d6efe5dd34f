// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/quick-poll/models"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")
)

// PollStore holds at most one poll: the active one.
type PollStore interface {
	// ReplaceAll discards any stored poll and stores p in its place.
	ReplaceAll(ctx context.Context, p *models.Poll) (*models.Poll, error)
	// GetLatest returns the active poll or ErrPollNotFound.
	GetLatest(ctx context.Context) (*models.Poll, error)
	// RecordVote adds exactly one vote to optionID of poll pollID.
	RecordVote(ctx context.Context, pollID string, optionID int) (*models.Poll, error)
	// Clear removes the active poll. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	Close(ctx context.Context) error
}
