// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/jeung1234/community/models"
)

var ErrInvalid = errors.New("invalid input")

// Error names the offending field. It unwraps to ErrInvalid.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Field + ": " + e.Message }

func (e *Error) Unwrap() error { return ErrInvalid }

func invalid(field, format string, args ...any) error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func Register(req models.RegisterRequest) error {
	if blank(req.Name) {
		return invalid("name", "name is required")
	}
	if err := Email(req.Email); err != nil {
		return err
	}
	return Password(req.Password)
}

func Email(email string) error {
	if blank(email) {
		return invalid("email", "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "%q is not an email address", email)
	}
	return nil
}

func Password(password string) error {
	if password == "" {
		return invalid("password", "password is required")
	}
	if len([]rune(password)) < models.MinPassword {
		return invalid("password", "password must be at least %d characters", models.MinPassword)
	}
	return nil
}

func Post(req models.PostRequest) error {
	if blank(req.Title) {
		return invalid("title", "title is required")
	}
	if blank(req.Body) {
		return invalid("body", "body is required")
	}
	return nil
}

func Comment(req models.CommentRequest) error {
	if blank(req.Content) {
		return invalid("content", "comment is empty")
	}
	return nil
}

// Poll trims the title and option texts in place, drops blank options and
// checks what is left.
func Poll(p *models.Poll) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return invalid("title", "title is required")
	}
	if p.Type == "" {
		p.Type = models.TypeSingleChoice
	}
	if !models.IsChoice(p.Type) {
		return invalid("type", "unknown poll type %q", p.Type)
	}

	opts, err := options("options", p.Options, true)
	if err != nil {
		return err
	}
	p.Options = opts
	return nil
}

// Survey trims texts in place and checks question and option counts.
// Blank options are errors here, not silently dropped.
func Survey(s *models.Survey) error {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	if s.Title == "" {
		return invalid("title", "title is required")
	}
	if len(s.Questions) < models.MinQuestions {
		return invalid("questions", "a survey needs at least %d question", models.MinQuestions)
	}
	if len(s.Questions) > models.MaxQuestions {
		return invalid("questions", "a survey has at most %d questions", models.MaxQuestions)
	}

	for i := range s.Questions {
		q := &s.Questions[i]
		field := fmt.Sprintf("questions[%d]", i)
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			return invalid(field, "question %d has no text", i+1)
		}

		switch q.Type {
		case models.TypeSingleChoice, models.TypeMultiChoice:
			opts, err := options(field+".options", q.Options, false)
			if err != nil {
				return err
			}
			q.Options = opts
		case models.TypeShortText, models.TypeLongText:
			q.Options = nil
		default:
			return invalid(field, "unknown question type %q", q.Type)
		}
	}
	return nil
}

func options(field string, in []models.Option, dropBlank bool) ([]models.Option, error) {
	out := make([]models.Option, 0, len(in))
	for i, opt := range in {
		opt.Text = strings.TrimSpace(opt.Text)
		if opt.Text == "" {
			if dropBlank {
				continue
			}
			return nil, invalid(field, "option %d has no text", i+1)
		}
		if opt.Votes < 0 {
			opt.Votes = 0
		}
		out = append(out, opt)
	}

	if len(out) < models.MinOptions {
		return nil, invalid(field, "at least %d options are required", models.MinOptions)
	}
	if len(out) > models.MaxOptions {
		return nil, invalid(field, "at most %d options are allowed", models.MaxOptions)
	}
	return out, nil
}

// Answers checks a survey response: required questions answered, choice
// answers naming real options, single choice holding one pick.
func Answers(s models.Survey, answers map[string]models.Answer) error {
	for _, q := range s.Questions {
		ans, ok := answers[q.ID]
		field := "answers." + q.ID

		if models.IsChoice(q.Type) {
			if q.Required && (!ok || len(ans.OptionIDs) == 0) {
				return invalid(field, "%q is required", q.Text)
			}
			if q.Type == models.TypeSingleChoice && len(ans.OptionIDs) > 1 {
				return invalid(field, "%q takes a single answer", q.Text)
			}
			for _, id := range ans.OptionIDs {
				if !slices.ContainsFunc(q.Options, func(o models.Option) bool { return o.ID == id }) {
					return invalid(field, "unknown option %q", id)
				}
			}
			continue
		}

		if q.Required && blank(ans.Text) {
			return invalid(field, "%q is required", q.Text)
		}
	}
	return nil
}
