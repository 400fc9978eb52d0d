// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jeung1234/community/auth"
	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/validate"
	"github.com/jeung1234/community/view"
)

type AccountHandler struct {
	env *Env
}

func NewAccountHandler(env *Env) *AccountHandler {
	return &AccountHandler{env: env}
}

// Register handles `register -name N -email E -password P`
func (h *AccountHandler) Register(ctx context.Context, args []string) error {
	var req models.RegisterRequest
	fs := h.env.newFlagSet("register")
	fs.StringVar(&req.Name, "name", "", "Display name")
	fs.StringVar(&req.Email, "email", "", "Email address")
	fs.StringVar(&req.Password, "password", "", "Password (at least 6 characters)")
	if _, err := h.env.parse(fs, args, "register -name NAME -email EMAIL -password PASSWORD"); err != nil {
		return err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Register(req); err != nil {
		return h.env.fail(err, "Check the registration form.", "")
	}

	existing, err := h.env.Client.FindUsers(ctx, req.Email, "")
	if err != nil {
		return h.env.fail(err, "Registration failed.", "")
	}
	if len(existing) > 0 {
		h.env.Notifier.Notify(view.LevelWarn, "That email is already registered.")
		return validate.ErrInvalid
	}

	user, err := h.env.Client.Register(ctx, req)
	if err != nil {
		return h.env.fail(err, "Registration failed.", "")
	}

	slog.Info("user registered", "user_id", user.ID)
	h.env.Notifier.Notify(view.LevelSuccess, "Welcome, "+user.Name+"! You can log in now.")
	h.env.Navigator.Navigate(view.LoginPath)
	return nil
}

// Login handles `login -email E -password P`
func (h *AccountHandler) Login(ctx context.Context, args []string) error {
	var email, password string
	fs := h.env.newFlagSet("login")
	fs.StringVar(&email, "email", "", "Email address")
	fs.StringVar(&password, "password", "", "Password")
	if _, err := h.env.parse(fs, args, "login -email EMAIL -password PASSWORD"); err != nil {
		return err
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return h.env.usage("login -email EMAIL -password PASSWORD")
	}

	user, err := h.env.Session.Login(ctx, h.env.Client, strings.TrimSpace(email), password)
	if errors.Is(err, auth.ErrBadCredentials) {
		h.env.Notifier.Notify(view.LevelError, "Email or password is incorrect.")
		return err
	}
	if err != nil {
		return h.env.fail(err, "Login failed.", "")
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Logged in as "+user.Name+".")
	h.env.Navigator.Navigate("/")
	return nil
}

// Logout handles `logout`
func (h *AccountHandler) Logout(ctx context.Context, args []string) error {
	if _, ok := h.env.Session.User(); !ok {
		h.env.Notifier.Notify(view.LevelInfo, "You are not logged in.")
		return nil
	}
	if err := h.env.Session.Logout(ctx); err != nil {
		slog.Error("failed to clear session", "error", err)
		h.env.Notifier.Notify(view.LevelError, "Logout failed.")
		return err
	}
	h.env.Notifier.Notify(view.LevelSuccess, "Logged out.")
	h.env.Navigator.Navigate("/")
	return nil
}

// MyPage handles `mypage`: the profile and the user's own posts.
func (h *AccountHandler) MyPage(ctx context.Context, args []string) error {
	user, err := h.env.currentUser("see your page")
	if err != nil {
		return err
	}

	h.env.printf("%s <%s>\n", user.Name, user.Email)

	posts, err := h.env.Client.ListPosts(ctx, user.Name)
	if err != nil {
		return h.env.fail(err, "Could not load your posts.", "")
	}
	posts = byNewest(posts, func(p models.Post) time.Time { return p.CreatedAt })
	if len(posts) == 0 {
		h.env.printf("\nNo posts yet.\n")
		return nil
	}
	h.env.printf("\nMy posts (%s)\n", count(len(posts), "post", "posts"))
	for _, p := range posts {
		h.env.printf("  #%-4s %s  %s\n", p.ID, p.Title, ago(p.CreatedAt))
	}
	return nil
}

// Profile handles `profile [-name N] [-email E] [-password P]`
func (h *AccountHandler) Profile(ctx context.Context, args []string) error {
	var req models.UpdateUserRequest
	fs := h.env.newFlagSet("profile")
	fs.StringVar(&req.Name, "name", "", "New display name")
	fs.StringVar(&req.Email, "email", "", "New email address")
	fs.StringVar(&req.Password, "password", "", "New password")
	if _, err := h.env.parse(fs, args, "profile [-name NAME] [-email EMAIL] [-password PASSWORD]"); err != nil {
		return err
	}

	user, err := h.env.currentUser("edit your profile")
	if err != nil {
		return err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" && req.Email == "" && req.Password == "" {
		return h.env.usage("profile [-name NAME] [-email EMAIL] [-password PASSWORD]")
	}
	if req.Email != "" {
		if err := validate.Email(req.Email); err != nil {
			return h.env.fail(err, "Invalid email.", "")
		}
	}
	if req.Password != "" {
		if err := validate.Password(req.Password); err != nil {
			return h.env.fail(err, "Invalid password.", "")
		}
	}

	updated, err := h.env.Client.As(user.ID).UpdateUser(ctx, user.ID, req)
	if err != nil {
		return h.env.fail(err, "Could not update your profile.", "")
	}
	if err := h.env.Session.Update(ctx, updated); err != nil {
		slog.Warn("failed to persist updated profile", "error", err)
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Profile updated.")
	return nil
}
