// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeung1234/community/models"
)

// SQLGuard keeps records in the vote_record table of the local store.
type SQLGuard struct {
	db *sql.DB
}

func NewSQLGuard(db *sql.DB) *SQLGuard {
	return &SQLGuard{db: db}
}

func (g *SQLGuard) HasVoted(ctx context.Context, subject Subject, userID string) (bool, error) {
	if err := subject.valid(); err != nil {
		return false, err
	}
	if userID == "" {
		return false, nil
	}

	var exists bool
	err := g.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote_record
			WHERE kind = $1 AND subject_id = $2 AND user_id = $3
		)
	`, subject.Kind, subject.ID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query vote record: %w", err)
	}
	return exists, nil
}

func (g *SQLGuard) RecordVote(ctx context.Context, subject Subject, userID string, optionIDs []string) error {
	if err := subject.valid(); err != nil {
		return err
	}
	if userID == "" {
		return errors.New("user id is required")
	}

	if optionIDs == nil {
		optionIDs = []string{}
	}
	payload, err := json.Marshal(optionIDs)
	if err != nil {
		return fmt.Errorf("failed to encode option ids: %w", err)
	}

	res, err := g.db.ExecContext(ctx, `
		INSERT INTO vote_record (kind, subject_id, user_id, option_ids, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, subject_id, user_id) DO NOTHING
	`, subject.Kind, subject.ID, userID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert vote record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}
	if n == 0 {
		return ErrAlreadyRecorded
	}

	slog.Debug("vote recorded", "kind", subject.Kind, "subject_id", subject.ID, "user_id", userID)
	return nil
}

func (g *SQLGuard) Lookup(ctx context.Context, subject Subject, userID string) (models.VoteRecord, bool, error) {
	if err := subject.valid(); err != nil {
		return models.VoteRecord{}, false, err
	}

	rec := models.VoteRecord{Kind: subject.Kind, SubjectID: subject.ID, UserID: userID}
	var payload string
	err := g.db.QueryRowContext(ctx, `
		SELECT option_ids, recorded_at FROM vote_record
		WHERE kind = $1 AND subject_id = $2 AND user_id = $3
	`, subject.Kind, subject.ID, userID).Scan(&payload, &rec.RecordedAt)
	if err == sql.ErrNoRows {
		return models.VoteRecord{}, false, nil
	}
	if err != nil {
		return models.VoteRecord{}, false, fmt.Errorf("failed to query vote record: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &rec.OptionIDs); err != nil {
		return models.VoteRecord{}, false, fmt.Errorf("failed to decode option ids: %w", err)
	}
	return rec, true, nil
}

func (g *SQLGuard) Forget(ctx context.Context, subject Subject) error {
	if err := subject.valid(); err != nil {
		return err
	}

	_, err := g.db.ExecContext(ctx, `
		DELETE FROM vote_record WHERE kind = $1 AND subject_id = $2
	`, subject.Kind, subject.ID)
	if err != nil {
		return fmt.Errorf("failed to delete vote records: %w", err)
	}
	return nil
}
