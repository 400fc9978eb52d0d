// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/view"
)

func TestHotPolls(t *testing.T) {
	polls := []models.Poll{
		{ID: "a", TotalVotes: 1},
		{ID: "b", TotalVotes: 9},
		{ID: "c", TotalVotes: 5},
		{ID: "d", TotalVotes: 5},
		{ID: "e", TotalVotes: 0},
	}

	got := HotPolls(polls, 3)
	want := []string{"b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d polls, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], p.ID)
		}
	}

	if n := len(HotPolls(polls[:2], 3)); n != 2 {
		t.Errorf("Expected all polls when fewer than n, got %d", n)
	}
}

func TestHotSurveys(t *testing.T) {
	surveys := []models.Survey{
		{ID: "a", TotalRespondents: 2},
		{ID: "b", TotalRespondents: 7},
	}
	got := HotSurveys(surveys, 3)
	if len(got) != 2 || got[0].ID != "b" {
		t.Errorf("Unexpected order %+v", got)
	}
}

func TestDashboard(t *testing.T) {
	te := setupEnv(t)
	h := NewDashboardHandler(te.Env)
	ctx := context.Background()

	for _, votes := range []int{3, 10, 1, 7} {
		te.backend.AddPoll(te.alice, models.Poll{
			Title:      "Poll with " + strings.Repeat("x", votes),
			Options:    []models.Option{{Text: "A", Votes: votes}, {Text: "B"}},
			TotalVotes: votes,
		})
	}
	te.backend.AddSurvey(te.alice, models.Survey{
		Title:            "Only survey",
		Questions:        []models.Question{{Text: "Q", Type: models.TypeShortText}},
		TotalRespondents: 2,
	})
	te.signIn(t, te.bob)

	if err := h.Show(ctx, nil); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	out := te.out.String()
	if !strings.HasPrefix(out, "Hello, bob.") {
		t.Errorf("Expected greeting:\n%s", out)
	}
	first := strings.Index(out, "1st")
	if first < 0 || !strings.Contains(out[first:], "10 votes") {
		t.Errorf("Expected the 10-vote poll first:\n%s", out)
	}
	if strings.Contains(out, "1 vote\n") {
		t.Errorf("Only three polls should be shown:\n%s", out)
	}
	if !strings.Contains(out, "Only survey") || !strings.Contains(out, "2 respondents") {
		t.Errorf("Expected the survey:\n%s", out)
	}
}

func TestDashboardPartialFailure(t *testing.T) {
	te := setupEnv(t)
	h := NewDashboardHandler(te.Env)
	te.backend.AddSurvey(te.alice, models.Survey{
		Title:     "Still shown",
		Questions: []models.Question{{Text: "Q", Type: models.TypeShortText}},
	})
	te.backend.Fail("GET /polls", http.StatusInternalServerError)

	if err := h.Show(context.Background(), nil); err == nil {
		t.Error("Expected an error for the failed half")
	}
	assertLevel(t, te.rec, view.LevelError)
	if !strings.Contains(te.out.String(), "Still shown") {
		t.Errorf("Surveys should still be listed:\n%s", te.out.String())
	}
}
