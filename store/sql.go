// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quick-poll/models"
)

// SQLStore keeps the active poll in the single-row poll table created by
// db.CreateSchema. Queries use $N placeholders, which both lib/pq and
// modernc sqlite accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ReplaceAll(ctx context.Context, p *models.Poll) (*models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (slot, id, question, created_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (slot) DO UPDATE
		SET id = excluded.id, question = excluded.question, created_at = excluded.created_at
	`, p.ID, p.Question, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert poll: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM poll_option`); err != nil {
		return nil, fmt.Errorf("failed to delete old options: %w", err)
	}

	for _, opt := range p.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (poll_id, id, label, votes)
			VALUES ($1, $2, $3, $4)
		`, p.ID, opt.ID, opt.Label, opt.Votes)
		if err != nil {
			return nil, fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	stored := *p
	stored.Options = append([]models.Option(nil), p.Options...)
	return &stored, nil
}

func (s *SQLStore) GetLatest(ctx context.Context) (*models.Poll, error) {
	return loadPoll(ctx, s.db, "")
}

func (s *SQLStore) RecordVote(ctx context.Context, pollID string, optionID int) (*models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE poll_option
		SET votes = votes + 1
		WHERE poll_id = $1 AND id = $2
	`, pollID, optionID)
	if err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)
		`, pollID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to query poll: %w", err)
		}
		if !exists {
			return nil, ErrPollNotFound
		}
		return nil, ErrOptionNotFound
	}

	p, err := loadPoll(ctx, tx, pollID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_option`); err != nil {
		return fmt.Errorf("failed to delete options: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM poll`); err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return tx.Commit()
}

func (s *SQLStore) Close(context.Context) error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// loadPoll reads the active poll with its options. A non-empty pollID also
// requires the active poll to have that id.
func loadPoll(ctx context.Context, q queryer, pollID string) (*models.Poll, error) {
	var p models.Poll
	err := q.QueryRowContext(ctx, `
		SELECT id, question, created_at
		FROM poll
		WHERE slot = 1 AND ($1 = '' OR id = $1)
	`, pollID).Scan(&p.ID, &p.Question, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, label, votes
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY id
	`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	p.Options = []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.Label, &opt.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		p.Options = append(p.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return &p, nil
}
