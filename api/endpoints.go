// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package api

import (
	"context"
	"net/url"

	"github.com/jeung1234/community/models"
)

// Users

// FindUsers queries users by email and, when given, password. Login uses
// it with both.
func (c *Client) FindUsers(ctx context.Context, email, password string) ([]models.User, error) {
	q := url.Values{"email": {email}}
	if password != "" {
		q.Set("password", password)
	}
	var users []models.User
	if err := c.get(ctx, "/users", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var u models.User
	err := c.post(ctx, "/users", req, &u)
	return u, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	var u models.User
	err := c.put(ctx, "/users/"+escape(id), req, &u)
	return u, err
}

// Board

// ListPosts returns posts, filtered by author name when author is set.
func (c *Client) ListPosts(ctx context.Context, author string) ([]models.Post, error) {
	var q url.Values
	if author != "" {
		q = url.Values{"author": {author}}
	}
	var posts []models.Post
	if err := c.get(ctx, "/boards", q, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (models.Post, error) {
	var p models.Post
	err := c.get(ctx, "/boards/"+escape(id), nil, &p)
	return p, err
}

func (c *Client) CreatePost(ctx context.Context, req models.PostRequest) (models.Post, error) {
	var p models.Post
	err := c.post(ctx, "/boards", req, &p)
	return p, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, req models.PostRequest) (models.Post, error) {
	var p models.Post
	err := c.put(ctx, "/boards/"+escape(id), req, &p)
	return p, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.delete(ctx, "/boards/"+escape(id))
}

func (c *Client) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.get(ctx, "/boards/"+escape(postID)+"/replies", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, postID string, req models.CommentRequest) (models.Comment, error) {
	var cm models.Comment
	err := c.post(ctx, "/boards/"+escape(postID)+"/replies", req, &cm)
	return cm, err
}

func (c *Client) UpdateComment(ctx context.Context, id string, req models.CommentRequest) (models.Comment, error) {
	var cm models.Comment
	err := c.put(ctx, "/replies/"+escape(id), req, &cm)
	return cm, err
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.delete(ctx, "/replies/"+escape(id))
}

// Polls

func (c *Client) ListPolls(ctx context.Context) ([]models.Poll, error) {
	var polls []models.Poll
	if err := c.get(ctx, "/polls", nil, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

func (c *Client) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	var p models.Poll
	err := c.get(ctx, "/polls/"+escape(id), nil, &p)
	return p, err
}

func (c *Client) CreatePoll(ctx context.Context, p models.Poll) (models.Poll, error) {
	var out models.Poll
	err := c.post(ctx, "/polls", p, &out)
	return out, err
}

func (c *Client) UpdatePoll(ctx context.Context, p models.Poll) (models.Poll, error) {
	var out models.Poll
	err := c.put(ctx, "/polls/"+escape(p.ID), p, &out)
	return out, err
}

func (c *Client) DeletePoll(ctx context.Context, id string) error {
	return c.delete(ctx, "/polls/"+escape(id))
}

// CastVote submits the selection and returns the poll as the backend
// counts it after the vote.
func (c *Client) CastVote(ctx context.Context, pollID string, optionIDs []string) (models.Poll, error) {
	var out models.Poll
	err := c.post(ctx, "/polls/"+escape(pollID)+"/votes", models.CastVoteRequest{OptionIDs: optionIDs}, &out)
	return out, err
}

// Surveys

func (c *Client) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	var surveys []models.Survey
	if err := c.get(ctx, "/surveys", nil, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (c *Client) GetSurvey(ctx context.Context, id string) (models.Survey, error) {
	var s models.Survey
	err := c.get(ctx, "/surveys/"+escape(id), nil, &s)
	return s, err
}

func (c *Client) CreateSurvey(ctx context.Context, s models.Survey) (models.Survey, error) {
	var out models.Survey
	err := c.post(ctx, "/surveys", s, &out)
	return out, err
}

func (c *Client) UpdateSurvey(ctx context.Context, s models.Survey) (models.Survey, error) {
	var out models.Survey
	err := c.put(ctx, "/surveys/"+escape(s.ID), s, &out)
	return out, err
}

func (c *Client) DeleteSurvey(ctx context.Context, id string) error {
	return c.delete(ctx, "/surveys/"+escape(id))
}

// SubmitResponse sends one respondent's answers and returns the survey as
// the backend counts it afterwards.
func (c *Client) SubmitResponse(ctx context.Context, surveyID string, answers map[string]models.Answer) (models.Survey, error) {
	var out models.Survey
	err := c.post(ctx, "/surveys/"+escape(surveyID)+"/responses", models.SubmitResponseRequest{Answers: answers}, &out)
	return out, err
}
