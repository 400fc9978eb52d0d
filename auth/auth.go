// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/models"
)

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrBadCredentials = errors.New("email or password does not match")
)

// Session tells components who is signed in. Components receive it
// explicitly instead of reading a global.
type Session interface {
	User() (models.User, bool)
}

// Static is a fixed Session, handy for tests and one-off calls.
type Static struct {
	Current *models.User
}

func (s Static) User() (models.User, bool) {
	if s.Current == nil {
		return models.User{}, false
	}
	return *s.Current, true
}

// GenerateToken creates a random opaque session token.
func GenerateToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// Holder is the signed-in user of this process, backed by a Store so the
// sign-in survives between runs. The token is opaque; there is no refresh
// or rotation.
type Holder struct {
	store Store
	token string
	user  *models.User
}

func NewHolder(store Store) *Holder {
	return &Holder{store: store}
}

func (h *Holder) User() (models.User, bool) {
	if h.user == nil {
		return models.User{}, false
	}
	return *h.user, true
}

func (h *Holder) Token() string { return h.token }

// Restore loads a previous sign-in from the store, if any.
func (h *Holder) Restore(ctx context.Context) error {
	token, user, ok, err := h.store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		h.token, h.user = "", nil
		return nil
	}
	h.token, h.user = token, &user
	return nil
}

// Login checks the credentials against the backend and persists the
// session.
func (h *Holder) Login(ctx context.Context, client *api.Client, email, password string) (models.User, error) {
	users, err := client.FindUsers(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, ErrBadCredentials
	}

	user := users[0]
	user.Password = ""
	if err := h.set(ctx, user); err != nil {
		return models.User{}, err
	}

	slog.Info("signed in", "user_id", user.ID)
	return user, nil
}

// Update replaces the stored user after a profile edit, keeping the token.
func (h *Holder) Update(ctx context.Context, user models.User) error {
	if h.user == nil {
		return ErrNotSignedIn
	}
	user.Password = ""
	if err := h.store.Save(ctx, h.token, user); err != nil {
		return err
	}
	h.user = &user
	return nil
}

func (h *Holder) set(ctx context.Context, user models.User) error {
	token, err := GenerateToken()
	if err != nil {
		return err
	}
	if err := h.store.Save(ctx, token, user); err != nil {
		return err
	}
	h.token, h.user = token, &user
	return nil
}

func (h *Holder) Logout(ctx context.Context) error {
	if err := h.store.Clear(ctx); err != nil {
		return err
	}
	h.token, h.user = "", nil
	return nil
}
