// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jeung1234/community/models"
)

// Store persists the single signed-in session of this machine.
type Store interface {
	Load(ctx context.Context) (token string, user models.User, ok bool, err error)
	Save(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
}

const sessionName = "default"

// SQLStore keeps the session in the session table.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context) (string, models.User, bool, error) {
	var token, payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT token, user_json FROM session WHERE name = $1
	`, sessionName).Scan(&token, &payload)
	if err == sql.ErrNoRows {
		return "", models.User{}, false, nil
	}
	if err != nil {
		return "", models.User{}, false, fmt.Errorf("failed to query session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return "", models.User{}, false, fmt.Errorf("failed to decode session user: %w", err)
	}
	return token, user, true, nil
}

func (s *SQLStore) Save(ctx context.Context, token string, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (name, token, user_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET token = excluded.token, user_json = excluded.user_json, updated_at = excluded.updated_at
	`, sessionName, token, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE name = $1`, sessionName); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// RedisStore keeps the session under one key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

const redisSessionKey = "community:session:" + sessionName

type redisSession struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *RedisStore) Load(ctx context.Context) (string, models.User, bool, error) {
	raw, err := s.client.Get(ctx, redisSessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", models.User{}, false, nil
	}
	if err != nil {
		return "", models.User{}, false, fmt.Errorf("error reading session: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		return "", models.User{}, false, fmt.Errorf("error decoding session: %w", err)
	}
	return rs.Token, rs.User, true, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, user models.User) error {
	payload, err := json.Marshal(redisSession{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := s.client.Set(ctx, redisSessionKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisSessionKey).Err(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}
