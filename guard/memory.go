// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/jeung1234/community/models"
)

// MemoryGuard forgets everything when the process exits. Tests use it.
type MemoryGuard struct {
	mu      sync.Mutex
	records map[Subject]map[string]models.VoteRecord
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{records: make(map[Subject]map[string]models.VoteRecord)}
}

func (g *MemoryGuard) HasVoted(ctx context.Context, subject Subject, userID string) (bool, error) {
	_, ok, err := g.Lookup(ctx, subject, userID)
	return ok, err
}

func (g *MemoryGuard) RecordVote(_ context.Context, subject Subject, userID string, optionIDs []string) error {
	if err := subject.valid(); err != nil {
		return err
	}
	if userID == "" {
		return errors.New("user id is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	users := g.records[subject]
	if users == nil {
		users = make(map[string]models.VoteRecord)
		g.records[subject] = users
	}
	if _, ok := users[userID]; ok {
		return ErrAlreadyRecorded
	}
	users[userID] = models.VoteRecord{
		Kind:       subject.Kind,
		SubjectID:  subject.ID,
		UserID:     userID,
		OptionIDs:  slices.Clone(optionIDs),
		RecordedAt: time.Now().UTC(),
	}
	return nil
}

func (g *MemoryGuard) Lookup(_ context.Context, subject Subject, userID string) (models.VoteRecord, bool, error) {
	if err := subject.valid(); err != nil {
		return models.VoteRecord{}, false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[subject][userID]
	return rec, ok, nil
}

func (g *MemoryGuard) Forget(_ context.Context, subject Subject) error {
	if err := subject.valid(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.records, subject)
	return nil
}
