// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/validate"
	"github.com/jeung1234/community/view"
)

const surveysPath = "/surveys"

type SurveyHandler struct {
	env *Env
}

func NewSurveyHandler(env *Env) *SurveyHandler {
	return &SurveyHandler{env: env}
}

func surveyTime(s models.Survey) time.Time { return s.CreatedAt }

// List handles `surveys`
func (h *SurveyHandler) List(ctx context.Context, args []string) error {
	surveys, err := h.env.Client.ListSurveys(ctx)
	if err != nil {
		return h.env.fail(err, "Could not load surveys.", "")
	}
	if len(surveys) == 0 {
		h.env.printf("No surveys yet.\n")
		return nil
	}
	for _, s := range byNewest(surveys, surveyTime) {
		h.env.printf("#%-4s %-40s %-12s %14s  %s\n",
			s.ID, s.Title, s.Author, count(s.TotalRespondents, "respondent", "respondents"), ago(s.CreatedAt))
	}
	return nil
}

func (h *SurveyHandler) load(ctx context.Context, id string) (*view.Controller, error) {
	c := view.NewSurveyController(h.env.Client, id, h.env.deps())
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (h *SurveyHandler) header(s models.Survey) {
	h.env.printf("%s\n", s.Title)
	if s.Description != "" {
		h.env.printf("%s\n", s.Description)
	}
	h.env.printf("by %s, %s · %s\n\n",
		s.Author, ago(s.CreatedAt), count(s.TotalRespondents, "respondent", "respondents"))
}

// Show handles `survey show <id>`
func (h *SurveyHandler) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("survey show ID")
	}
	c, err := h.load(ctx, args[0])
	if err != nil {
		return err
	}
	s, _ := c.Subject().Survey()
	h.header(s)

	for qi, q := range s.Questions {
		req := ""
		if q.Required {
			req = " *"
		}
		h.env.printf("%d. %s%s (%s)\n", qi+1, q.Text, req, typeLabel(q.Type))
		for oi, o := range q.Options {
			mark := " "
			if slices.Contains(c.Selected(q.ID), o.ID) {
				mark = "*"
			}
			h.env.printf("  %s[%d] %s\n", mark, oi+1, o.Text)
		}
	}

	switch c.State() {
	case view.VotableView:
		h.env.printf("\nAnswer with: survey submit %s -a 1=N -a 2=TEXT ...\n", s.ID)
	case view.AuthorView:
		h.env.printf("\nYou created this survey. See: survey results %s\n", s.ID)
	case view.AlreadyVotedView:
		h.env.printf("\nYou already answered. See: survey results %s\n", s.ID)
	}
	return nil
}

// Submit handles `survey submit <id> -a N=VALUE ...`
func (h *SurveyHandler) Submit(ctx context.Context, args []string) error {
	var answers stringList
	fs := h.env.newFlagSet("survey submit")
	fs.Var(&answers, "a", "Answer as N=VALUE (repeat per question)")
	const usage = "survey submit ID -a 1=N[,N] -a 2=TEXT ..."
	rest, err := h.env.parse(fs, args, usage)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return h.env.usage(usage)
	}

	c, err := h.load(ctx, rest[0])
	if err != nil {
		return err
	}

	if c.State() == view.VotableView {
		s, _ := c.Subject().Survey()
		for _, a := range answers {
			qid, ans, err := parseAnswer(s, a)
			if err != nil {
				h.env.Notifier.Notify(view.LevelWarn, err.Error())
				return err
			}
			if ans.OptionIDs == nil {
				c.SetText(qid, ans.Text)
				continue
			}
			for _, id := range ans.OptionIDs {
				if !slices.Contains(c.Selected(qid), id) {
					c.Toggle(qid, id)
				}
			}
		}
	}

	if err := c.Submit(ctx); err != nil {
		return err
	}
	h.printResults(c)
	return nil
}

// Results handles `survey results <id>`
func (h *SurveyHandler) Results(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("survey results ID")
	}
	c, err := h.load(ctx, args[0])
	if err != nil {
		return err
	}
	h.printResults(c)
	return nil
}

func (h *SurveyHandler) printResults(c *view.Controller) {
	s, _ := c.Subject().Survey()
	h.header(s)
	results := c.Results()
	if len(results) == 0 {
		h.env.printf("No choice questions to tally.\n")
		return
	}
	h.env.printResults(results, func(questionID, optionID string) bool {
		return slices.Contains(c.Selected(questionID), optionID)
	}, true)
}

// readSurveyFile loads a survey form from a JSON file.
func readSurveyFile(path string) (models.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Survey{}, err
	}
	var s models.Survey
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Survey{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	ensureIDs(&s)
	return s, nil
}

// Create handles `survey create -title T [-description D] -q SPEC ... | -f FILE`
func (h *SurveyHandler) Create(ctx context.Context, args []string) error {
	var title, description, file string
	var questions stringList
	fs := h.env.newFlagSet("survey create")
	fs.StringVar(&title, "title", "", "Survey title")
	fs.StringVar(&description, "description", "", "Optional description")
	fs.Var(&questions, "q", "Question as TYPE[!]:TEXT[:A|B|...]")
	fs.StringVar(&file, "f", "", "Read the survey from a JSON file")
	const usage = "survey create -title TITLE [-description TEXT] -q TYPE[!]:TEXT[:A|B] ... | -f FILE"
	if _, err := h.env.parse(fs, args, usage); err != nil {
		return err
	}

	user, err := h.env.currentUser("create a survey")
	if err != nil {
		return err
	}

	var s models.Survey
	if file != "" {
		s, err = readSurveyFile(file)
		if err != nil {
			h.env.Notifier.Notify(view.LevelError, "Could not read "+file+".")
			return err
		}
	}
	if title != "" {
		s.Title = title
	}
	if description != "" {
		s.Description = description
	}
	if len(questions) > 0 {
		s.Questions, err = parseQuestions(questions)
		if err != nil {
			h.env.Notifier.Notify(view.LevelWarn, err.Error())
			return err
		}
	}
	s.Author = user.Name
	s.TotalRespondents = 0
	if err := validate.Survey(&s); err != nil {
		return h.env.fail(err, "Check the survey form.", "")
	}

	created, err := h.env.Client.As(user.ID).CreateSurvey(ctx, s)
	if err != nil {
		return h.env.fail(err, "Could not create the survey.", "")
	}

	slog.Info("survey created", "survey_id", created.ID, "questions", len(created.Questions))
	h.env.Notifier.Notify(view.LevelSuccess, "Survey created.")
	h.env.Navigator.Navigate(surveysPath + "/" + created.ID)
	return nil
}

// Edit handles `survey edit <id> [-title T] [-description D] [-q SPEC ...]`.
// Questions given replace the current ones by position.
func (h *SurveyHandler) Edit(ctx context.Context, args []string) error {
	var title, description string
	var questions stringList
	fs := h.env.newFlagSet("survey edit")
	fs.StringVar(&title, "title", "", "New title")
	fs.StringVar(&description, "description", "", "New description")
	fs.Var(&questions, "q", "Question as TYPE[!]:TEXT[:A|B|...]")
	const usage = "survey edit ID [-title TITLE] [-description TEXT] [-q TYPE[!]:TEXT[:A|B] ...]"
	rest, err := h.env.parse(fs, args, usage)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return h.env.usage(usage)
	}

	user, err := h.env.currentUser("edit a survey")
	if err != nil {
		return err
	}

	s, err := h.env.Client.GetSurvey(ctx, rest[0])
	if err != nil {
		return h.env.fail(err, "Could not load the survey.", surveysPath)
	}
	if s.AuthorID != user.ID {
		h.env.Notifier.Notify(view.LevelError, "Only the author can edit this survey.")
		h.env.Navigator.Navigate(surveysPath + "/" + s.ID)
		return view.ErrNotAuthor
	}

	if t := strings.TrimSpace(title); t != "" {
		s.Title = t
	}
	if d := strings.TrimSpace(description); d != "" {
		s.Description = d
	}
	if len(questions) > 0 {
		edited, err := parseQuestions(questions)
		if err != nil {
			h.env.Notifier.Notify(view.LevelWarn, err.Error())
			return err
		}
		s.Questions = mergeQuestions(s.Questions, edited)
	}
	if err := validate.Survey(&s); err != nil {
		return h.env.fail(err, "Check the survey form.", "")
	}

	if _, err := h.env.Client.As(user.ID).UpdateSurvey(ctx, s); err != nil {
		return h.env.fail(err, "Could not update the survey.", "")
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Survey updated.")
	h.env.Navigator.Navigate(surveysPath + "/" + s.ID)
	return nil
}

// Delete handles `survey delete <id>`
func (h *SurveyHandler) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("survey delete ID")
	}
	if _, err := h.env.currentUser("delete a survey"); err != nil {
		return err
	}
	c, err := h.load(ctx, args[0])
	if err != nil {
		return err
	}
	if err := c.Delete(ctx); err != nil {
		if !errors.Is(err, view.ErrNotAuthor) {
			slog.Warn("survey delete failed", "survey_id", args[0], "error", err)
		}
		return err
	}
	slog.Info("survey deleted", "survey_id", args[0])
	return nil
}
