// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeung1234/community/models"
)

func newOptions(texts []string) []models.Option {
	opts := make([]models.Option, 0, len(texts))
	for _, t := range texts {
		opts = append(opts, models.Option{ID: uuid.NewString(), Text: t})
	}
	return opts
}

// mergeOptions lays new texts over existing options by position. Options
// that survive keep their id and votes; extra texts become new options
// and missing positions are dropped.
func mergeOptions(existing []models.Option, texts []string) []models.Option {
	opts := make([]models.Option, 0, len(texts))
	for i, t := range texts {
		if i < len(existing) {
			o := existing[i]
			o.Text = t
			opts = append(opts, o)
			continue
		}
		opts = append(opts, models.Option{ID: uuid.NewString(), Text: t})
	}
	return opts
}

// editPoll applies form values to a copy of p. Empty values keep the
// current field. The total is recomputed from the surviving options.
func editPoll(p models.Poll, title, description, pollType string, options []string) models.Poll {
	if title != "" {
		p.Title = title
	}
	if description != "" {
		p.Description = description
	}
	if pollType != "" {
		p.Type = pollType
	}
	if len(options) > 0 {
		p.Options = mergeOptions(p.Options, options)
	}
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	p.TotalVotes = total
	return p
}

// parseQuestion reads a question written as
//
//	TYPE[!]:TEXT[:OPTION|OPTION...]
//
// where TYPE is single, multi, short or long and "!" marks it required,
// e.g. "single!:Favourite day:Mon|Fri".
func parseQuestion(spec string) (models.Question, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return models.Question{}, fmt.Errorf("%w: question %q needs TYPE:TEXT", ErrUsage, spec)
	}

	kind := strings.TrimSpace(parts[0])
	required := strings.HasSuffix(kind, "!")
	kind = strings.TrimSuffix(kind, "!")
	qType, ok := parseType(kind)
	if !ok {
		return models.Question{}, fmt.Errorf("%w: unknown question type %q", ErrUsage, kind)
	}

	q := models.Question{
		Text:     strings.TrimSpace(parts[1]),
		Type:     qType,
		Required: required,
	}
	if len(parts) == 3 {
		if !models.IsChoice(qType) {
			return models.Question{}, fmt.Errorf("%w: %s questions take no options", ErrUsage, kind)
		}
		q.Options = newOptions(strings.Split(parts[2], "|"))
	}
	return q, nil
}

func parseQuestions(specs []string) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(specs))
	for _, s := range specs {
		q, err := parseQuestion(s)
		if err != nil {
			return nil, err
		}
		q.ID = uuid.NewString()
		questions = append(questions, q)
	}
	return questions, nil
}

// mergeQuestions replaces questions by position. A question that keeps a
// choice type keeps its id and the votes of its surviving options.
func mergeQuestions(existing, edited []models.Question) []models.Question {
	out := make([]models.Question, 0, len(edited))
	for i, q := range edited {
		if i < len(existing) {
			prev := existing[i]
			q.ID = prev.ID
			if models.IsChoice(q.Type) && models.IsChoice(prev.Type) {
				texts := make([]string, 0, len(q.Options))
				for _, o := range q.Options {
					texts = append(texts, o.Text)
				}
				q.Options = mergeOptions(prev.Options, texts)
			}
		}
		out = append(out, q)
	}
	return out
}

// ensureIDs assigns ids to questions and options loaded from a file.
func ensureIDs(s *models.Survey) {
	for qi := range s.Questions {
		q := &s.Questions[qi]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		for oi := range q.Options {
			if q.Options[oi].ID == "" {
				q.Options[oi].ID = uuid.NewString()
			}
		}
	}
}

// parseAnswer reads "N=VALUE" for survey question N (1-based). VALUE is a
// comma separated list of option numbers for choice questions and free
// text otherwise.
func parseAnswer(s models.Survey, arg string) (string, models.Answer, error) {
	num, value, ok := strings.Cut(arg, "=")
	if !ok {
		return "", models.Answer{}, fmt.Errorf("%w: answer %q needs N=VALUE", ErrUsage, arg)
	}
	qi, err := choice(num, len(s.Questions))
	if err != nil {
		return "", models.Answer{}, err
	}
	q := s.Questions[qi]

	if !models.IsChoice(q.Type) {
		return q.ID, models.Answer{Text: value}, nil
	}
	var ans models.Answer
	for _, part := range strings.Split(value, ",") {
		oi, err := choice(part, len(q.Options))
		if err != nil {
			return "", models.Answer{}, err
		}
		ans.OptionIDs = append(ans.OptionIDs, q.Options[oi].ID)
	}
	return q.ID, ans, nil
}
