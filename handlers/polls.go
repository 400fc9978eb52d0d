// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/validate"
	"github.com/jeung1234/community/view"
)

const pollsPath = "/polls"

type PollHandler struct {
	env *Env
}

func NewPollHandler(env *Env) *PollHandler {
	return &PollHandler{env: env}
}

func pollTime(p models.Poll) time.Time { return p.CreatedAt }

// List handles `polls`
func (h *PollHandler) List(ctx context.Context, args []string) error {
	polls, err := h.env.Client.ListPolls(ctx)
	if err != nil {
		return h.env.fail(err, "Could not load polls.", "")
	}
	if len(polls) == 0 {
		h.env.printf("No polls yet.\n")
		return nil
	}
	for _, p := range byNewest(polls, pollTime) {
		h.env.printf("#%-4s %-40s %-12s %10s  %s\n",
			p.ID, p.Title, p.Author, count(p.TotalVotes, "vote", "votes"), ago(p.CreatedAt))
	}
	return nil
}

func (h *PollHandler) load(ctx context.Context, id string) (*view.Controller, error) {
	c := view.NewPollController(h.env.Client, id, h.env.deps())
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (h *PollHandler) render(c *view.Controller) {
	s := c.Subject()
	p, _ := s.Poll()

	h.env.printf("%s\n", p.Title)
	if p.Description != "" {
		h.env.printf("%s\n", p.Description)
	}
	h.env.printf("by %s, %s · %s · %s\n\n",
		p.Author, ago(p.CreatedAt), typeLabel(p.Type), count(p.TotalVotes, "vote", "votes"))

	switch c.State() {
	case view.VotableView:
		for i, o := range p.Options {
			h.env.printf("  [%d] %s\n", i+1, o.Text)
		}
		h.env.printf("\nVote with: poll vote %s N\n", p.ID)
	default:
		picked := func(_, optionID string) bool {
			return slices.Contains(c.Selected(p.ID), optionID)
		}
		h.env.printResults(c.Results(), picked, false)
		if c.State() == view.AuthorView {
			h.env.printf("\nYou created this poll.\n")
		}
	}
}

// Show handles `poll show <id>`
func (h *PollHandler) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("poll show ID")
	}
	c, err := h.load(ctx, args[0])
	if err != nil {
		return err
	}
	h.render(c)
	return nil
}

// Vote handles `poll vote <id> N [N...]` where N are option numbers.
func (h *PollHandler) Vote(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return h.env.usage("poll vote ID N [N...]")
	}
	c, err := h.load(ctx, args[0])
	if err != nil {
		return err
	}

	if c.State() == view.VotableView {
		p, _ := c.Subject().Poll()
		for _, arg := range args[1:] {
			i, err := choice(arg, len(p.Options))
			if err != nil {
				h.env.Notifier.Notify(view.LevelWarn, err.Error())
				return err
			}
			// Toggling twice in multi-choice would undo the pick
			if !slices.Contains(c.Selected(p.ID), p.Options[i].ID) {
				c.Choose(p.Options[i].ID)
			}
		}
	}

	if err := c.Submit(ctx); err != nil {
		return err
	}
	h.render(c)
	return nil
}

// Create handles `poll create -title T [-description D] [-type single|multi] -option A -option B ...`
func (h *PollHandler) Create(ctx context.Context, args []string) error {
	var title, description, kind string
	var options stringList
	fs := h.env.newFlagSet("poll create")
	fs.StringVar(&title, "title", "", "Poll title")
	fs.StringVar(&description, "description", "", "Optional description")
	fs.StringVar(&kind, "type", "single", "single or multi")
	fs.Var(&options, "option", "An option (repeat 2 to 10 times)")
	const usage = "poll create -title TITLE [-description TEXT] [-type single|multi] -option A -option B ..."
	if _, err := h.env.parse(fs, args, usage); err != nil {
		return err
	}

	user, err := h.env.currentUser("create a poll")
	if err != nil {
		return err
	}

	pollType, ok := parseType(kind)
	if !ok || !models.IsChoice(pollType) {
		return h.env.usage(usage)
	}
	p := models.Poll{
		Title:       title,
		Description: strings.TrimSpace(description),
		Author:      user.Name,
		Type:        pollType,
		Options:     newOptions(options),
	}
	if err := validate.Poll(&p); err != nil {
		return h.env.fail(err, "Check the poll form.", "")
	}

	created, err := h.env.Client.As(user.ID).CreatePoll(ctx, p)
	if err != nil {
		return h.env.fail(err, "Could not create the poll.", "")
	}

	slog.Info("poll created", "poll_id", created.ID, "options", len(created.Options))
	h.env.Notifier.Notify(view.LevelSuccess, "Poll created.")
	h.env.Navigator.Navigate(pollsPath + "/" + created.ID)
	return nil
}

// Edit handles `poll edit <id> [-title T] [-description D] [-type T] [-option A ...]`.
// Options given replace the current ones by position.
func (h *PollHandler) Edit(ctx context.Context, args []string) error {
	var title, description, kind string
	var options stringList
	fs := h.env.newFlagSet("poll edit")
	fs.StringVar(&title, "title", "", "New title")
	fs.StringVar(&description, "description", "", "New description")
	fs.StringVar(&kind, "type", "", "single or multi")
	fs.Var(&options, "option", "Option text by position")
	const usage = "poll edit ID [-title TITLE] [-description TEXT] [-type single|multi] [-option A ...]"
	rest, err := h.env.parse(fs, args, usage)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return h.env.usage(usage)
	}

	user, err := h.env.currentUser("edit a poll")
	if err != nil {
		return err
	}

	current, err := h.env.Client.GetPoll(ctx, rest[0])
	if err != nil {
		return h.env.fail(err, "Could not load the poll.", pollsPath)
	}
	if current.AuthorID != user.ID {
		h.env.Notifier.Notify(view.LevelError, "Only the author can edit this poll.")
		h.env.Navigator.Navigate(pollsPath + "/" + current.ID)
		return view.ErrNotAuthor
	}

	pollType := ""
	if kind != "" {
		t, ok := parseType(kind)
		if !ok || !models.IsChoice(t) {
			return h.env.usage(usage)
		}
		pollType = t
	}

	p := editPoll(current, strings.TrimSpace(title), strings.TrimSpace(description), pollType, options)
	if err := validate.Poll(&p); err != nil {
		return h.env.fail(err, "Check the poll form.", "")
	}

	if _, err := h.env.Client.As(user.ID).UpdatePoll(ctx, p); err != nil {
		return h.env.fail(err, "Could not update the poll.", "")
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Poll updated.")
	h.env.Navigator.Navigate(pollsPath + "/" + p.ID)
	return nil
}

// Delete handles `poll delete <id>`
func (h *PollHandler) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("poll delete ID")
	}
	if _, err := h.env.currentUser("delete a poll"); err != nil {
		return err
	}
	c, err := h.load(ctx, args[0])
	if err != nil {
		return err
	}
	if err := c.Delete(ctx); err != nil {
		if !errors.Is(err, view.ErrNotAuthor) {
			slog.Warn("poll delete failed", "poll_id", args[0], "error", err)
		}
		return err
	}
	slog.Info("poll deleted", "poll_id", args[0])
	return nil
}
