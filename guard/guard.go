// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guard

import (
	"context"
	"errors"

	"github.com/jeung1234/community/models"
)

var (
	ErrAlreadyRecorded = errors.New("vote already recorded")
	ErrInvalidSubject  = errors.New("invalid subject")
)

// Subject identifies a poll or survey.
type Subject struct {
	Kind string
	ID   string
}

func Poll(id string) Subject   { return Subject{Kind: models.KindPoll, ID: id} }
func Survey(id string) Subject { return Subject{Kind: models.KindSurvey, ID: id} }

func (s Subject) valid() error {
	if s.ID == "" || (s.Kind != models.KindPoll && s.Kind != models.KindSurvey) {
		return ErrInvalidSubject
	}
	return nil
}

// Guard remembers which signed-in users already voted from this machine.
//
// It is a convenience against repeat clicks, not ballot-stuffing
// protection: records live in a local store with no binding to the
// user's identity, and only the backend can enforce one vote per user.
// Records are keyed by user, so signing in as someone else resets
// eligibility.
type Guard interface {
	HasVoted(ctx context.Context, subject Subject, userID string) (bool, error)
	// RecordVote stores the selection once. A second call for the same
	// subject and user returns ErrAlreadyRecorded and keeps the first.
	RecordVote(ctx context.Context, subject Subject, userID string, optionIDs []string) error
	Lookup(ctx context.Context, subject Subject, userID string) (models.VoteRecord, bool, error)
	// Forget drops every record of the subject, e.g. after it is deleted.
	Forget(ctx context.Context, subject Subject) error
}
