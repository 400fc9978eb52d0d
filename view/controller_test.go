// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/auth"
	"github.com/jeung1234/community/guard"
	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/testutil"
	"github.com/jeung1234/community/validate"
)

type fixture struct {
	backend *testutil.Backend
	client  *api.Client
	guard   *guard.MemoryGuard
	rec     *Recorder
	author  models.User
	voter   models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := testutil.NewBackend(t)
	return &fixture{
		backend: backend,
		client:  api.NewClient(backend.URL(), nil),
		guard:   guard.NewMemoryGuard(),
		rec:     &Recorder{},
		author:  backend.AddUser("alice", "alice@example.com", "secret1"),
		voter:   backend.AddUser("bob", "bob@example.com", "secret2"),
	}
}

func (f *fixture) deps(user *models.User) Deps {
	return Deps{
		Guard:     f.guard,
		Session:   auth.Static{Current: user},
		Notifier:  f.rec,
		Navigator: f.rec,
	}
}

func (f *fixture) poll(pollType string) models.Poll {
	return f.backend.AddPoll(f.author, models.Poll{
		Title: "Lunch?",
		Type:  pollType,
		Options: []models.Option{
			{Text: "Pizza", Votes: 3},
			{Text: "Sushi", Votes: 1},
		},
		TotalVotes: 4,
	})
}

func (f *fixture) survey() models.Survey {
	return f.backend.AddSurvey(f.author, models.Survey{
		Title: "Team survey",
		Questions: []models.Question{
			{
				Text:     "Favourite day",
				Type:     models.TypeSingleChoice,
				Required: true,
				Options:  []models.Option{{Text: "Mon"}, {Text: "Fri"}},
			},
			{Text: "Anything else?", Type: models.TypeLongText},
		},
	})
}

const votesPattern = "POST /polls/{id}/votes"

func TestAuthorCannotVote(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()

	c := NewPollController(f.client, p.ID, f.deps(&f.author))
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.State() != AuthorView {
		t.Fatalf("Expected author view, got %s", c.State())
	}
	if !c.ResultsVisible() {
		t.Error("Author should see results")
	}
	if c.Choose(p.Options[0].ID) {
		t.Error("Author selection should be disabled")
	}

	if err := c.Submit(ctx); !errors.Is(err, ErrNotVotable) {
		t.Errorf("Expected ErrNotVotable, got %v", err)
	}
	if f.rec.Last().Level != LevelInfo {
		t.Errorf("Expected info notice, got %+v", f.rec.Last())
	}
	if n := f.backend.Hits(votesPattern); n != 0 {
		t.Errorf("Expected no vote request, got %d", n)
	}
}

func TestAuthorWinsOverGuardRecord(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()

	if err := f.guard.RecordVote(ctx, guard.Poll(p.ID), f.author.ID, []string{p.Options[0].ID}); err != nil {
		t.Fatal(err)
	}

	c := NewPollController(f.client, p.ID, f.deps(&f.author))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != AuthorView {
		t.Errorf("Expected author view, got %s", c.State())
	}
}

func TestUnauthenticatedSubmitRedirectsToLogin(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()

	c := NewPollController(f.client, p.ID, f.deps(nil))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != VotableView {
		t.Fatalf("Expected votable view, got %s", c.State())
	}
	if !c.Choose(p.Options[0].ID) {
		t.Fatal("Expected selection to change")
	}

	if err := c.Submit(ctx); !errors.Is(err, auth.ErrNotSignedIn) {
		t.Errorf("Expected ErrNotSignedIn, got %v", err)
	}
	if f.rec.Path() != LoginPath {
		t.Errorf("Expected navigation to %s, got %q", LoginPath, f.rec.Path())
	}
	if n := f.backend.Hits(votesPattern); n != 0 {
		t.Errorf("Expected no vote request, got %d", n)
	}
	if c.State() != VotableView {
		t.Errorf("Expected to stay votable, got %s", c.State())
	}
}

func TestPollVote(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()

	c := NewPollController(f.client, p.ID, f.deps(&f.voter))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != VotableView {
		t.Fatalf("Expected votable view, got %s", c.State())
	}

	c.Choose(p.Options[0].ID)
	c.Choose(p.Options[1].ID)
	if got := c.Selected(p.ID); len(got) != 1 || got[0] != p.Options[1].ID {
		t.Fatalf("Single choice should keep the last pick, got %v", got)
	}

	if err := c.Submit(ctx); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if c.State() != AlreadyVotedView {
		t.Errorf("Expected already-voted view, got %s", c.State())
	}
	if f.rec.Last().Level != LevelSuccess {
		t.Errorf("Expected success notice, got %+v", f.rec.Last())
	}

	// The controller shows what the backend returned
	if c.Subject().Total != 5 {
		t.Errorf("Expected total 5 from server, got %d", c.Subject().Total)
	}
	stored, _ := f.backend.Poll(p.ID)
	if stored.Options[1].Votes != 2 {
		t.Errorf("Expected Sushi to have 2 votes, got %d", stored.Options[1].Votes)
	}

	results := c.Results()
	if len(results) != 1 || len(results[0].Options) != 2 {
		t.Fatalf("Unexpected results shape: %+v", results)
	}
	if got := results[0].Options[0].Label(); got != "60.0%" {
		t.Errorf("Expected Pizza at 60.0%%, got %s", got)
	}

	voted, err := f.guard.HasVoted(ctx, guard.Poll(p.ID), f.voter.ID)
	if err != nil || !voted {
		t.Errorf("Expected guard record, got %v err=%v", voted, err)
	}

	if c.Choose(p.Options[0].ID) {
		t.Error("Selection should be frozen after voting")
	}
	if err := c.Submit(ctx); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted on second submit, got %v", err)
	}
	if n := f.backend.Hits(votesPattern); n != 1 {
		t.Errorf("Expected exactly one vote request, got %d", n)
	}
}

func TestMultiChoiceVote(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeMultiChoice)
	ctx := context.Background()

	c := NewPollController(f.client, p.ID, f.deps(&f.voter))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	c.Choose(p.Options[0].ID)
	c.Choose(p.Options[1].ID)
	if got := c.Selected(p.ID); len(got) != 2 {
		t.Fatalf("Expected two picks, got %v", got)
	}
	if err := c.Submit(ctx); err != nil {
		t.Fatal(err)
	}

	stored, _ := f.backend.Poll(p.ID)
	if stored.Options[0].Votes != 4 || stored.Options[1].Votes != 2 {
		t.Errorf("Unexpected counts %+v", stored.Options)
	}
	rec, ok, err := f.guard.Lookup(ctx, guard.Poll(p.ID), f.voter.ID)
	if err != nil || !ok || len(rec.OptionIDs) != 2 {
		t.Errorf("Expected both picks recorded, got %+v ok=%v err=%v", rec, ok, err)
	}
}

func TestAlreadyVotedRestoresSelection(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()

	if err := f.guard.RecordVote(ctx, guard.Poll(p.ID), f.voter.ID, []string{p.Options[1].ID}); err != nil {
		t.Fatal(err)
	}

	c := NewPollController(f.client, p.ID, f.deps(&f.voter))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != AlreadyVotedView {
		t.Fatalf("Expected already-voted view, got %s", c.State())
	}
	if got := c.Selected(p.ID); len(got) != 1 || got[0] != p.Options[1].ID {
		t.Errorf("Expected previous pick restored, got %v", got)
	}
	if c.Choose(p.Options[0].ID) {
		t.Error("Selection should be read-only")
	}
	if err := c.Submit(ctx); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted, got %v", err)
	}
	if n := f.backend.Hits(votesPattern); n != 0 {
		t.Errorf("Expected no vote request, got %d", n)
	}
}

func TestOtherUserIsNotBlockedByGuard(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()
	carol := f.backend.AddUser("carol", "carol@example.com", "secret3")

	if err := f.guard.RecordVote(ctx, guard.Poll(p.ID), f.voter.ID, []string{p.Options[0].ID}); err != nil {
		t.Fatal(err)
	}

	c := NewPollController(f.client, p.ID, f.deps(&carol))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != VotableView {
		t.Errorf("Expected votable view for another user, got %s", c.State())
	}
}

func TestSubmitFailureStaysVotable(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()

	c := NewPollController(f.client, p.ID, f.deps(&f.voter))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	c.Choose(p.Options[0].ID)

	f.backend.Fail(votesPattern, http.StatusInternalServerError)
	if err := c.Submit(ctx); err == nil {
		t.Fatal("Expected submit to fail")
	}
	if c.State() != VotableView {
		t.Errorf("Expected to stay votable, got %s", c.State())
	}
	if f.rec.Last().Level != LevelError {
		t.Errorf("Expected error notice, got %+v", f.rec.Last())
	}
	if voted, _ := f.guard.HasVoted(ctx, guard.Poll(p.ID), f.voter.ID); voted {
		t.Error("Failed submit must not be recorded")
	}

	// Retry keeps the selection
	f.backend.Fail(votesPattern, 0)
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if c.State() != AlreadyVotedView {
		t.Errorf("Expected already-voted view after retry, got %s", c.State())
	}
}

func TestSubmitWithoutSelection(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)
	ctx := context.Background()

	c := NewPollController(f.client, p.ID, f.deps(&f.voter))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expected ErrNoSelection, got %v", err)
	}
	if f.rec.Last().Level != LevelWarn {
		t.Errorf("Expected warning, got %+v", f.rec.Last())
	}
	if n := f.backend.Hits(votesPattern); n != 0 {
		t.Errorf("Expected no vote request, got %d", n)
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErr  error
		wantPath string
	}{
		{"not found", http.StatusNotFound, api.ErrNotFound, "/polls"},
		{"unauthorized", http.StatusUnauthorized, api.ErrUnauthorized, LoginPath},
		{"forbidden", http.StatusForbidden, api.ErrUnauthorized, LoginPath},
		{"server error", http.StatusInternalServerError, nil, "/polls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.poll(models.TypeSingleChoice)
			f.backend.Fail("GET /polls/{id}", tt.status)

			c := NewPollController(f.client, p.ID, f.deps(&f.voter))
			err := c.Load(context.Background())
			if err == nil {
				t.Fatal("Expected load to fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if c.State() != ErrorView {
				t.Errorf("Expected error view, got %s", c.State())
			}
			if f.rec.Path() != tt.wantPath {
				t.Errorf("Expected navigation to %s, got %q", tt.wantPath, f.rec.Path())
			}
			if f.rec.Last().Level != LevelError {
				t.Errorf("Expected error notice, got %+v", f.rec.Last())
			}
		})
	}
}

func TestMissingPoll(t *testing.T) {
	f := newFixture(t)
	c := NewPollController(f.client, "999", f.deps(&f.voter))
	if err := c.Load(context.Background()); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if f.rec.Path() != "/polls" {
		t.Errorf("Expected navigation to /polls, got %q", f.rec.Path())
	}
}

func TestSurveySubmit(t *testing.T) {
	f := newFixture(t)
	s := f.survey()
	ctx := context.Background()
	day := s.Questions[0]
	note := s.Questions[1]

	c := NewSurveyController(f.client, s.ID, f.deps(&f.voter))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != VotableView {
		t.Fatalf("Expected votable view, got %s", c.State())
	}

	// Required question unanswered
	if !c.SetText(note.ID, "nothing") {
		t.Fatal("Expected text answer to be accepted")
	}
	if c.SetText(day.ID, "Mon") {
		t.Error("Choice question must not take text")
	}
	if err := c.Submit(ctx); !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if f.rec.Last().Level != LevelWarn {
		t.Errorf("Expected warning, got %+v", f.rec.Last())
	}
	if n := f.backend.Hits("POST /surveys/{id}/responses"); n != 0 {
		t.Errorf("Expected no submission, got %d", n)
	}

	c.Toggle(day.ID, day.Options[1].ID)
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if c.State() != AlreadyVotedView {
		t.Errorf("Expected already-voted view, got %s", c.State())
	}
	if want := "/surveys/" + s.ID + "/results"; f.rec.Path() != want {
		t.Errorf("Expected navigation to %s, got %q", want, f.rec.Path())
	}

	if c.Subject().Total != 1 {
		t.Errorf("Expected 1 respondent, got %d", c.Subject().Total)
	}
	results := c.Results()
	if len(results) != 1 {
		t.Fatalf("Expected results for the choice question only, got %d", len(results))
	}
	if got := results[0].Options[1].Label(); got != "100.0%" {
		t.Errorf("Expected Fri at 100.0%%, got %s", got)
	}

	// Coming back shows the previous answer
	again := NewSurveyController(f.client, s.ID, f.deps(&f.voter))
	if err := again.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if again.State() != AlreadyVotedView {
		t.Errorf("Expected already-voted view, got %s", again.State())
	}
	if got := again.Selected(day.ID); len(got) != 1 || got[0] != day.Options[1].ID {
		t.Errorf("Expected Fri restored, got %v", got)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("non-author", func(t *testing.T) {
		p := f.poll(models.TypeSingleChoice)
		c := NewPollController(f.client, p.ID, f.deps(&f.voter))
		if err := c.Load(ctx); err != nil {
			t.Fatal(err)
		}
		if err := c.Delete(ctx); !errors.Is(err, ErrNotAuthor) {
			t.Errorf("Expected ErrNotAuthor, got %v", err)
		}
		if _, ok := f.backend.Poll(p.ID); !ok {
			t.Error("Poll should still exist")
		}
	})

	t.Run("author", func(t *testing.T) {
		s := f.survey()
		if err := f.guard.RecordVote(ctx, guard.Survey(s.ID), f.voter.ID, nil); err != nil {
			t.Fatal(err)
		}

		c := NewSurveyController(f.client, s.ID, f.deps(&f.author))
		if err := c.Load(ctx); err != nil {
			t.Fatal(err)
		}
		if err := c.Delete(ctx); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok := f.backend.Survey(s.ID); ok {
			t.Error("Survey should be gone")
		}
		if f.rec.Path() != "/surveys" {
			t.Errorf("Expected navigation to /surveys, got %q", f.rec.Path())
		}
		if voted, _ := f.guard.HasVoted(ctx, guard.Survey(s.ID), f.voter.ID); voted {
			t.Error("Expected guard records to be forgotten")
		}
	})
}

type brokenGuard struct{ guard.Guard }

func (brokenGuard) Lookup(context.Context, guard.Subject, string) (models.VoteRecord, bool, error) {
	return models.VoteRecord{}, false, errors.New("store offline")
}

func TestGuardFailureCountsAsNotVoted(t *testing.T) {
	f := newFixture(t)
	p := f.poll(models.TypeSingleChoice)

	deps := f.deps(&f.voter)
	deps.Guard = brokenGuard{Guard: f.guard}

	c := NewPollController(f.client, p.ID, deps)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.State() != VotableView {
		t.Errorf("Expected votable view, got %s", c.State())
	}
}

func TestStateString(t *testing.T) {
	if AlreadyVotedView.String() != "already-voted" {
		t.Errorf("Unexpected %q", AlreadyVotedView.String())
	}
	if State(42).String() != "unknown" {
		t.Error("Expected unknown for out-of-range state")
	}
}

// stubSource serves a fixed poll and counts votes in memory.
type stubSource struct {
	poll models.Poll
	sent []string
}

func (s *stubSource) Fetch(context.Context) (Subject, error) { return FromPoll(s.poll), nil }

func (s *stubSource) Submit(_ context.Context, _ string, answers map[string]models.Answer) (Subject, error) {
	s.sent = answers[s.poll.ID].OptionIDs
	for i := range s.poll.Options {
		for _, id := range s.sent {
			if s.poll.Options[i].ID == id {
				s.poll.Options[i].Votes++
			}
		}
	}
	s.poll.TotalVotes++
	return FromPoll(s.poll), nil
}

func (s *stubSource) Delete(context.Context, string) error { return nil }

func TestPollTypeTags(t *testing.T) {
	tests := []struct {
		name      string
		pollType  string
		wantMulti bool
	}{
		{"untyped", "", false},
		{"single", models.TypeSingleChoice, false},
		{"hyphenated single", "single-choice", false},
		{"unknown tag", "ranked", false},
		{"multi", models.TypeMultiChoice, true},
		{"hyphenated multi", "multi-choice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			src := &stubSource{poll: models.Poll{
				ID:       "7",
				Title:    "Lunch?",
				Type:     tt.pollType,
				AuthorID: f.author.ID,
				Options:  []models.Option{{ID: "o1", Text: "Pizza"}, {ID: "o2", Text: "Sushi"}},
			}}
			c := NewController(PollConfig(), "7", src, f.deps(&f.voter))
			ctx := context.Background()

			if err := c.Load(ctx); err != nil {
				t.Fatal(err)
			}
			if c.State() != VotableView {
				t.Fatalf("Expected votable view, got %s", c.State())
			}
			if !c.Choose("o1") || !c.Choose("o2") {
				t.Fatal("Expected options to be selectable")
			}

			want := 1
			if tt.wantMulti {
				want = 2
			}
			if got := len(c.Selected("7")); got != want {
				t.Errorf("Expected %d selected, got %d", want, got)
			}

			if err := c.Submit(ctx); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			if c.State() != AlreadyVotedView {
				t.Errorf("Expected already-voted view, got %s", c.State())
			}
			if len(src.sent) != want {
				t.Errorf("Expected %d options sent, got %v", want, src.sent)
			}
			if p, _ := c.Subject().Poll(); p.Type != tt.pollType {
				t.Errorf("Poll type rewritten to %q", p.Type)
			}
		})
	}
}
