// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/jeung1234/community/models"
)

// hotCount is how many polls and surveys the dashboard highlights.
const hotCount = 3

type DashboardHandler struct {
	env *Env
}

func NewDashboardHandler(env *Env) *DashboardHandler {
	return &DashboardHandler{env: env}
}

// HotPolls returns the n polls with the most votes. Ties keep backend order.
func HotPolls(polls []models.Poll, n int) []models.Poll {
	out := slices.Clone(polls)
	slices.SortStableFunc(out, func(a, b models.Poll) int {
		return cmp.Compare(b.TotalVotes, a.TotalVotes)
	})
	return out[:min(n, len(out))]
}

// HotSurveys returns the n surveys with the most respondents.
func HotSurveys(surveys []models.Survey, n int) []models.Survey {
	out := slices.Clone(surveys)
	slices.SortStableFunc(out, func(a, b models.Survey) int {
		return cmp.Compare(b.TotalRespondents, a.TotalRespondents)
	})
	return out[:min(n, len(out))]
}

// Show handles `dashboard`. A failing half is reported and the other half
// is still shown.
func (h *DashboardHandler) Show(ctx context.Context, args []string) error {
	if user, ok := h.env.Session.User(); ok {
		h.env.printf("Hello, %s.\n\n", user.Name)
	}

	var firstErr error

	polls, err := h.env.Client.ListPolls(ctx)
	h.env.printf("Hot polls\n")
	switch {
	case err != nil:
		slog.Warn("failed to load polls", "error", err)
		firstErr = h.env.fail(err, "Could not load polls.", "")
	case len(polls) == 0:
		h.env.printf("  No polls yet.\n")
	default:
		for i, p := range HotPolls(polls, hotCount) {
			h.env.printf("  %-4s #%-4s %-40s %s\n",
				humanize.Ordinal(i+1), p.ID, p.Title, count(p.TotalVotes, "vote", "votes"))
		}
	}

	surveys, err := h.env.Client.ListSurveys(ctx)
	h.env.printf("\nHot surveys\n")
	switch {
	case err != nil:
		slog.Warn("failed to load surveys", "error", err)
		if firstErr == nil {
			firstErr = h.env.fail(err, "Could not load surveys.", "")
		}
	case len(surveys) == 0:
		h.env.printf("  No surveys yet.\n")
	default:
		for i, s := range HotSurveys(surveys, hotCount) {
			h.env.printf("  %-4s #%-4s %-40s %s\n",
				humanize.Ordinal(i+1), s.ID, s.Title, count(s.TotalRespondents, "respondent", "respondents"))
		}
	}

	return firstErr
}
