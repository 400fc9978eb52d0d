// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/auth"
	"github.com/jeung1234/community/guard"
	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/validate"
	"github.com/jeung1234/community/vote"
)

// State of one poll or survey as seen by one viewer.
type State int

const (
	Loading State = iota
	AuthorView
	VotableView
	AlreadyVotedView
	ErrorView
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case AuthorView:
		return "author"
	case VotableView:
		return "votable"
	case AlreadyVotedView:
		return "already-voted"
	case ErrorView:
		return "error"
	}
	return "unknown"
}

var (
	ErrNotVotable   = errors.New("subject cannot be voted on in this view")
	ErrAlreadyVoted = errors.New("already participated")
	ErrNotAuthor    = errors.New("only the author can do this")
	ErrNoSelection  = errors.New("nothing selected")
)

const LoginPath = "/login"

// Config is the part of a controller that differs between polls and
// surveys.
type Config struct {
	Kind string
	// Noun is used in notices, e.g. "poll".
	Noun string
	// ListPath is where fetch failures and deletions land.
	ListPath string
	// ResultsPath, when set, is where the viewer goes after submitting or
	// when trying to submit twice. "%s" is replaced by the subject id.
	ResultsPath string
}

func PollConfig() Config {
	return Config{Kind: models.KindPoll, Noun: "poll", ListPath: "/polls"}
}

func SurveyConfig() Config {
	return Config{
		Kind:        models.KindSurvey,
		Noun:        "survey",
		ListPath:    "/surveys",
		ResultsPath: "/surveys/%s/results",
	}
}

// Subject is a poll or survey flattened into questions. A poll is one
// required question whose id is the poll id.
type Subject struct {
	ID          string
	Title       string
	Description string
	Author      string
	AuthorID    string
	CreatedAt   time.Time
	Questions   []models.Question
	// Total is total votes for a poll, respondents for a survey.
	Total int

	poll   *models.Poll
	survey *models.Survey
}

// FromPoll turns p into a one-question subject. Polls that are not
// multipleChoice vote as single choice, including untyped ones.
func FromPoll(p models.Poll) Subject {
	qType := models.TypeSingleChoice
	if models.NormalizeType(p.Type) == models.TypeMultiChoice {
		qType = models.TypeMultiChoice
	}
	return Subject{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Author:      p.Author,
		AuthorID:    p.AuthorID,
		CreatedAt:   p.CreatedAt,
		Questions: []models.Question{{
			ID:       p.ID,
			Text:     p.Title,
			Type:     qType,
			Required: true,
			Options:  p.Options,
		}},
		Total: p.TotalVotes,
		poll:  &p,
	}
}

func FromSurvey(s models.Survey) Subject {
	return Subject{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Author:      s.Author,
		AuthorID:    s.AuthorID,
		CreatedAt:   s.CreatedAt,
		Questions:   s.Questions,
		Total:       s.TotalRespondents,
		survey:      &s,
	}
}

func (s Subject) Poll() (models.Poll, bool) {
	if s.poll == nil {
		return models.Poll{}, false
	}
	return *s.poll, true
}

func (s Subject) Survey() (models.Survey, bool) {
	if s.survey == nil {
		return models.Survey{}, false
	}
	return *s.survey, true
}

// Source fetches, submits to and deletes one subject on the backend.
type Source interface {
	Fetch(ctx context.Context) (Subject, error)
	Submit(ctx context.Context, userID string, answers map[string]models.Answer) (Subject, error)
	Delete(ctx context.Context, userID string) error
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Guard     guard.Guard
	Session   auth.Session
	Notifier  Notifier
	Navigator Navigator
}

// Controller drives one poll or survey page for one viewer:
//
//	Loading → AuthorView | AlreadyVotedView | VotableView | ErrorView
//	VotableView → AlreadyVotedView on a successful submit
//
// Being the author wins over any guard record. Unauthenticated viewers
// see VotableView and are sent to the login page when they submit.
type Controller struct {
	cfg    Config
	id     string
	source Source
	deps   Deps

	state      State
	subject    Subject
	selections map[string]*vote.Selection
	texts      map[string]string
}

func NewController(cfg Config, id string, source Source, deps Deps) *Controller {
	return &Controller{
		cfg:    cfg,
		id:     id,
		source: source,
		deps:   deps,
		state:  Loading,
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Subject() Subject { return c.subject }

func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) guardKey() guard.Subject {
	return guard.Subject{Kind: c.cfg.Kind, ID: c.id}
}

func (c *Controller) resultsPath() string {
	if c.cfg.ResultsPath == "" {
		return ""
	}
	return fmt.Sprintf(c.cfg.ResultsPath, c.id)
}

// Load fetches the subject and settles the viewer's state.
func (c *Controller) Load(ctx context.Context) error {
	c.state = Loading

	subject, err := c.source.Fetch(ctx)
	if err != nil {
		c.state = ErrorView
		c.deps.Notifier.Notify(LevelError, "Could not load the "+c.cfg.Noun+".")
		if errors.Is(err, api.ErrUnauthorized) {
			c.deps.Navigator.Navigate(LoginPath)
		} else {
			c.deps.Navigator.Navigate(c.cfg.ListPath)
		}
		slog.Warn("fetch failed", "kind", c.cfg.Kind, "id", c.id, "error", err)
		return err
	}

	c.setSubject(subject)

	user, signedIn := c.deps.Session.User()
	switch {
	case signedIn && user.ID == subject.AuthorID:
		c.state = AuthorView
		c.freeze()
	case signedIn && c.participated(ctx, user.ID):
		c.state = AlreadyVotedView
		c.freeze()
	default:
		c.state = VotableView
	}
	return nil
}

// participated consults the guard. Guard failures count as "not voted":
// the guard is advisory and the backend has the last word.
func (c *Controller) participated(ctx context.Context, userID string) bool {
	rec, ok, err := c.deps.Guard.Lookup(ctx, c.guardKey(), userID)
	if err != nil {
		slog.Warn("vote record lookup failed", "kind", c.cfg.Kind, "id", c.id, "error", err)
		return false
	}
	if !ok {
		return false
	}
	for _, q := range c.subject.Questions {
		sel := c.selections[q.ID]
		if sel == nil {
			continue
		}
		var picked []string
		for _, o := range q.Options {
			if slices.Contains(rec.OptionIDs, o.ID) {
				picked = append(picked, o.ID)
			}
		}
		sel.Restore(picked)
	}
	return true
}

func (c *Controller) setSubject(s Subject) {
	c.subject = s
	c.selections = make(map[string]*vote.Selection)
	c.texts = make(map[string]string)
	for _, q := range s.Questions {
		if models.IsChoice(q.Type) {
			c.selections[q.ID] = vote.NewSelection(q.Type)
		}
	}
}

func (c *Controller) freeze() {
	for _, sel := range c.selections {
		sel.Disable()
	}
}

// Selectable reports whether inputs accept changes.
func (c *Controller) Selectable() bool { return c.state == VotableView }

// ResultsVisible reports whether counts are shown instead of inputs.
func (c *Controller) ResultsVisible() bool {
	return c.state == AuthorView || c.state == AlreadyVotedView
}

// Toggle clicks an option of a choice question.
func (c *Controller) Toggle(questionID, optionID string) bool {
	if !c.Selectable() {
		return false
	}
	sel := c.selections[questionID]
	if sel == nil {
		return false
	}
	return sel.Toggle(optionID)
}

// Choose clicks an option of the first question. For polls that is the
// only question.
func (c *Controller) Choose(optionID string) bool {
	if len(c.subject.Questions) == 0 {
		return false
	}
	return c.Toggle(c.subject.Questions[0].ID, optionID)
}

// SetText fills a text question.
func (c *Controller) SetText(questionID, text string) bool {
	if !c.Selectable() {
		return false
	}
	for _, q := range c.subject.Questions {
		if q.ID == questionID && !models.IsChoice(q.Type) {
			c.texts[questionID] = text
			return true
		}
	}
	return false
}

// Selected returns the picks for a question.
func (c *Controller) Selected(questionID string) []string {
	if sel := c.selections[questionID]; sel != nil {
		return sel.Selected()
	}
	return nil
}

func (c *Controller) answers() map[string]models.Answer {
	out := make(map[string]models.Answer)
	for _, q := range c.subject.Questions {
		if sel := c.selections[q.ID]; sel != nil {
			if !sel.Empty() {
				out[q.ID] = models.Answer{OptionIDs: sel.Selected()}
			}
			continue
		}
		if text := strings.TrimSpace(c.texts[q.ID]); text != "" {
			out[q.ID] = models.Answer{Text: text}
		}
	}
	return out
}

func (c *Controller) checkAnswers(answers map[string]models.Answer) error {
	if survey, ok := c.subject.Survey(); ok {
		return validate.Answers(survey, answers)
	}
	if len(answers) == 0 {
		return ErrNoSelection
	}
	return nil
}

// Submit sends the viewer's answers. On success the backend's copy of the
// subject replaces the local one and the viewer moves to AlreadyVotedView.
// On failure the view stays votable so the user may retry.
func (c *Controller) Submit(ctx context.Context) error {
	switch c.state {
	case AuthorView:
		c.deps.Notifier.Notify(LevelInfo, "You cannot vote on your own "+c.cfg.Noun+".")
		if p := c.resultsPath(); p != "" {
			c.deps.Navigator.Navigate(p)
		}
		return ErrNotVotable
	case AlreadyVotedView:
		c.deps.Notifier.Notify(LevelInfo, "You already took part in this "+c.cfg.Noun+".")
		if p := c.resultsPath(); p != "" {
			c.deps.Navigator.Navigate(p)
		}
		return ErrAlreadyVoted
	case VotableView:
	default:
		return ErrNotVotable
	}

	user, ok := c.deps.Session.User()
	if !ok {
		c.deps.Notifier.Notify(LevelWarn, "Log in to vote.")
		c.deps.Navigator.Navigate(LoginPath)
		return auth.ErrNotSignedIn
	}

	answers := c.answers()
	if err := c.checkAnswers(answers); err != nil {
		msg := "Choose an option first."
		var ve *validate.Error
		if errors.As(err, &ve) {
			msg = ve.Message
		}
		c.deps.Notifier.Notify(LevelWarn, msg)
		return err
	}

	updated, err := c.source.Submit(ctx, user.ID, answers)
	if err != nil {
		c.deps.Notifier.Notify(LevelError, "Your vote could not be submitted. Try again.")
		slog.Warn("submit failed", "kind", c.cfg.Kind, "id", c.id, "error", err)
		return err
	}

	var picked []string
	for _, a := range answers {
		picked = append(picked, a.OptionIDs...)
	}
	err = c.deps.Guard.RecordVote(ctx, c.guardKey(), user.ID, picked)
	if err != nil && !errors.Is(err, guard.ErrAlreadyRecorded) {
		slog.Warn("failed to record vote locally", "kind", c.cfg.Kind, "id", c.id, "error", err)
	}

	prior := c.selections
	c.setSubject(updated)
	for qid, sel := range prior {
		if next := c.selections[qid]; next != nil {
			next.Restore(sel.Selected())
		}
	}
	c.freeze()
	c.state = AlreadyVotedView

	slog.Info("vote submitted", "kind", c.cfg.Kind, "id", c.id, "user_id", user.ID)
	c.deps.Notifier.Notify(LevelSuccess, "Thanks, your vote was counted.")
	if p := c.resultsPath(); p != "" {
		c.deps.Navigator.Navigate(p)
	}
	return nil
}

// Delete removes the subject. Only its author may; local vote records
// for it are dropped afterwards.
func (c *Controller) Delete(ctx context.Context) error {
	user, ok := c.deps.Session.User()
	if !ok || c.state != AuthorView || user.ID != c.subject.AuthorID {
		c.deps.Notifier.Notify(LevelError, "Only the author can delete this "+c.cfg.Noun+".")
		return ErrNotAuthor
	}

	if err := c.source.Delete(ctx, user.ID); err != nil {
		c.deps.Notifier.Notify(LevelError, "Could not delete the "+c.cfg.Noun+".")
		return err
	}

	if err := c.deps.Guard.Forget(ctx, c.guardKey()); err != nil {
		slog.Warn("failed to forget vote records", "kind", c.cfg.Kind, "id", c.id, "error", err)
	}

	c.deps.Notifier.Notify(LevelSuccess, "Deleted.")
	c.deps.Navigator.Navigate(c.cfg.ListPath)
	return nil
}

// Results tallies the current subject. A poll yields one entry whose
// denominator is the poll's total votes; survey questions use the sum of
// their option votes.
func (c *Controller) Results() []vote.QuestionResults {
	if p, ok := c.subject.Poll(); ok {
		return []vote.QuestionResults{{
			QuestionID: p.ID,
			Text:       p.Title,
			Type:       p.Type,
			Total:      p.TotalVotes,
			Options:    vote.TallyPoll(p),
		}}
	}
	if s, ok := c.subject.Survey(); ok {
		return vote.TallySurvey(s)
	}
	return nil
}
