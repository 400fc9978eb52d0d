// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/models"
)

type pollSource struct {
	client *api.Client
	id     string
}

func (s pollSource) Fetch(ctx context.Context) (Subject, error) {
	p, err := s.client.GetPoll(ctx, s.id)
	if err != nil {
		return Subject{}, err
	}
	return FromPoll(p), nil
}

func (s pollSource) Submit(ctx context.Context, userID string, answers map[string]models.Answer) (Subject, error) {
	p, err := s.client.As(userID).CastVote(ctx, s.id, answers[s.id].OptionIDs)
	if err != nil {
		return Subject{}, err
	}
	return FromPoll(p), nil
}

func (s pollSource) Delete(ctx context.Context, userID string) error {
	return s.client.As(userID).DeletePoll(ctx, s.id)
}

type surveySource struct {
	client *api.Client
	id     string
}

func (s surveySource) Fetch(ctx context.Context) (Subject, error) {
	sv, err := s.client.GetSurvey(ctx, s.id)
	if err != nil {
		return Subject{}, err
	}
	return FromSurvey(sv), nil
}

func (s surveySource) Submit(ctx context.Context, userID string, answers map[string]models.Answer) (Subject, error) {
	sv, err := s.client.As(userID).SubmitResponse(ctx, s.id, answers)
	if err != nil {
		return Subject{}, err
	}
	return FromSurvey(sv), nil
}

func (s surveySource) Delete(ctx context.Context, userID string) error {
	return s.client.As(userID).DeleteSurvey(ctx, s.id)
}

// NewPollController builds a controller for the poll with the given id.
func NewPollController(client *api.Client, id string, deps Deps) *Controller {
	return NewController(PollConfig(), id, pollSource{client: client, id: id}, deps)
}

// NewSurveyController builds a controller for the survey with the given id.
func NewSurveyController(client *api.Client, id string, deps Deps) *Controller {
	return NewController(SurveyConfig(), id, surveySource{client: client, id: id}, deps)
}
