// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jeung1234/community/models"
)

// RedisGuard keeps one hash per subject, one field per user.
type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	c := redis.NewClient(opts)

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return c, nil
}

func subjectKey(s Subject) string {
	return fmt.Sprintf("community:votes:%s:%s", s.Kind, s.ID)
}

type redisRecord struct {
	OptionIDs  []string  `json:"option_ids"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (g *RedisGuard) HasVoted(ctx context.Context, subject Subject, userID string) (bool, error) {
	if err := subject.valid(); err != nil {
		return false, err
	}
	if userID == "" {
		return false, nil
	}

	ok, err := g.client.HExists(ctx, subjectKey(subject), userID).Result()
	if err != nil {
		return false, fmt.Errorf("error checking vote record: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) RecordVote(ctx context.Context, subject Subject, userID string, optionIDs []string) error {
	if err := subject.valid(); err != nil {
		return err
	}
	if userID == "" {
		return errors.New("user id is required")
	}

	if optionIDs == nil {
		optionIDs = []string{}
	}
	payload, err := json.Marshal(redisRecord{OptionIDs: optionIDs, RecordedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("error encoding vote record: %w", err)
	}

	set, err := g.client.HSetNX(ctx, subjectKey(subject), userID, payload).Result()
	if err != nil {
		return fmt.Errorf("error writing vote record: %w", err)
	}
	if !set {
		return ErrAlreadyRecorded
	}
	return nil
}

func (g *RedisGuard) Lookup(ctx context.Context, subject Subject, userID string) (models.VoteRecord, bool, error) {
	if err := subject.valid(); err != nil {
		return models.VoteRecord{}, false, err
	}

	raw, err := g.client.HGet(ctx, subjectKey(subject), userID).Result()
	if errors.Is(err, redis.Nil) {
		return models.VoteRecord{}, false, nil
	}
	if err != nil {
		return models.VoteRecord{}, false, fmt.Errorf("error reading vote record: %w", err)
	}

	var r redisRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return models.VoteRecord{}, false, fmt.Errorf("error decoding vote record: %w", err)
	}
	return models.VoteRecord{
		Kind:       subject.Kind,
		SubjectID:  subject.ID,
		UserID:     userID,
		OptionIDs:  r.OptionIDs,
		RecordedAt: r.RecordedAt,
	}, true, nil
}

func (g *RedisGuard) Forget(ctx context.Context, subject Subject) error {
	if err := subject.valid(); err != nil {
		return err
	}
	if err := g.client.Del(ctx, subjectKey(subject)).Err(); err != nil {
		return fmt.Errorf("error deleting vote records: %w", err)
	}
	return nil
}
