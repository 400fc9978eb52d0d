// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeung1234/community/middleware"
	"github.com/jeung1234/community/models"
)

// Backend is an in-memory stand-in for the community REST backend. It
// speaks the same routes and status codes and nothing more: no
// persistence and no duplicate-vote enforcement.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	seq      int
	users    []models.User
	posts    []models.Post
	comments []models.Comment
	polls    []models.Poll
	surveys  []models.Survey
	failures map[string]int
	hits     map[string]int
}

// NewBackend starts a fake backend that is closed with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		failures: make(map[string]int),
		hits:     make(map[string]int),
	}

	mux := http.NewServeMux()
	b.handle(mux, "GET /users", b.findUsers)
	b.handle(mux, "POST /users", b.register)
	b.handle(mux, "PUT /users/{id}", b.updateUser)

	b.handle(mux, "GET /boards", b.listPosts)
	b.handle(mux, "POST /boards", b.createPost)
	b.handle(mux, "GET /boards/{id}", b.getPost)
	b.handle(mux, "PUT /boards/{id}", b.updatePost)
	b.handle(mux, "DELETE /boards/{id}", b.deletePost)
	b.handle(mux, "GET /boards/{id}/replies", b.listComments)
	b.handle(mux, "POST /boards/{id}/replies", b.createComment)
	b.handle(mux, "PUT /replies/{id}", b.updateComment)
	b.handle(mux, "DELETE /replies/{id}", b.deleteComment)

	b.handle(mux, "GET /polls", b.listPolls)
	b.handle(mux, "POST /polls", b.createPoll)
	b.handle(mux, "GET /polls/{id}", b.getPoll)
	b.handle(mux, "PUT /polls/{id}", b.updatePoll)
	b.handle(mux, "DELETE /polls/{id}", b.deletePoll)
	b.handle(mux, "POST /polls/{id}/votes", b.castVote)

	b.handle(mux, "GET /surveys", b.listSurveys)
	b.handle(mux, "POST /surveys", b.createSurvey)
	b.handle(mux, "GET /surveys/{id}", b.getSurvey)
	b.handle(mux, "PUT /surveys/{id}", b.updateSurvey)
	b.handle(mux, "DELETE /surveys/{id}", b.deleteSurvey)
	b.handle(mux, "POST /surveys/{id}/responses", b.submitResponse)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)

	return b
}

func (b *Backend) URL() string { return b.Server.URL }

// Fail makes every request matching pattern (e.g. "GET /polls/{id}")
// answer with status until Fail is called again with 0.
func (b *Backend) Fail(pattern string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, pattern)
		return
	}
	b.failures[pattern] = status
}

// Hits returns how many requests matched pattern.
func (b *Backend) Hits(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[pattern]
}

func (b *Backend) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[pattern]++
		status := b.failures[pattern]
		b.mu.Unlock()

		if status != 0 {
			middleware.ErrorResponse(w, status, "injected failure")
			return
		}
		h(w, r)
	}))
}

func (b *Backend) nextID() string {
	b.seq++
	return strconv.Itoa(b.seq)
}

// Seeding

func (b *Backend) AddUser(name, email, password string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	u := models.User{ID: b.nextID(), Name: name, Email: email, Password: password}
	b.users = append(b.users, u)
	return u
}

func (b *Backend) AddPost(author models.User, title, body string) models.Post {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := models.Post{
		ID:        b.nextID(),
		Title:     title,
		Body:      body,
		Author:    author.Name,
		AuthorID:  author.ID,
		CreatedAt: time.Now().UTC(),
	}
	b.posts = append(b.posts, p)
	return p
}

func (b *Backend) AddComment(author models.User, postID, content string) models.Comment {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := models.Comment{
		ID:        b.nextID(),
		PostID:    postID,
		Content:   content,
		Author:    author.Name,
		AuthorID:  author.ID,
		CreatedAt: time.Now().UTC(),
	}
	b.comments = append(b.comments, c)
	return c
}

// AddPoll stores p as authored by author. Options keep their IDs and
// votes; missing IDs are assigned.
func (b *Backend) AddPoll(author models.User, p models.Poll) models.Poll {
	b.mu.Lock()
	defer b.mu.Unlock()

	p.ID = b.nextID()
	p.Author = author.Name
	p.AuthorID = author.ID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Type == "" {
		p.Type = models.TypeSingleChoice
	}
	p.Options = b.withOptionIDs(p.Options)
	b.polls = append(b.polls, p)
	return p
}

func (b *Backend) AddSurvey(author models.User, s models.Survey) models.Survey {
	b.mu.Lock()
	defer b.mu.Unlock()

	s.ID = b.nextID()
	s.Author = author.Name
	s.AuthorID = author.ID
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	for i := range s.Questions {
		if s.Questions[i].ID == "" {
			s.Questions[i].ID = "q" + b.nextID()
		}
		s.Questions[i].Options = b.withOptionIDs(s.Questions[i].Options)
	}
	b.surveys = append(b.surveys, s)
	return s
}

func (b *Backend) withOptionIDs(opts []models.Option) []models.Option {
	out := slices.Clone(opts)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = "o" + b.nextID()
		}
	}
	return out
}

// Inspection

func (b *Backend) Poll(id string) (models.Poll, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.polls, func(p models.Poll) bool { return p.ID == id })
	if i < 0 {
		return models.Poll{}, false
	}
	return b.polls[i], true
}

func (b *Backend) Survey(id string) (models.Survey, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.surveys, func(s models.Survey) bool { return s.ID == id })
	if i < 0 {
		return models.Survey{}, false
	}
	return b.surveys[i], true
}

func (b *Backend) Post(id string) (models.Post, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.posts, func(p models.Post) bool { return p.ID == id })
	if i < 0 {
		return models.Post{}, false
	}
	return b.posts[i], true
}

func (b *Backend) Comments(postID string) []models.Comment {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.Comment
	for _, c := range b.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out
}

// caller resolves the X-USER-ID header. Must be called with b.mu held.
func (b *Backend) caller(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	id := r.Header.Get(middleware.UserIDHeader)
	i := slices.IndexFunc(b.users, func(u models.User) bool { return u.ID == id })
	if id == "" || i < 0 {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return models.User{}, false
	}
	return b.users[i], true
}

// Users

func (b *Backend) findUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	email := r.URL.Query().Get("email")
	password := r.URL.Query().Get("password")

	users := []models.User{}
	for _, u := range b.users {
		if email != "" && u.Email != email {
			continue
		}
		if password != "" && u.Password != password {
			continue
		}
		users = append(users, u)
	}
	middleware.JSONResponse(w, http.StatusOK, users)
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u := models.User{ID: b.nextID(), Name: req.Name, Email: req.Email, Password: req.Password}
	b.users = append(b.users, u)
	middleware.JSONResponse(w, http.StatusCreated, u)
}

func (b *Backend) updateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	if me.ID != r.PathValue("id") {
		middleware.ErrorResponse(w, http.StatusForbidden, "Cannot edit another user")
		return
	}

	i := slices.IndexFunc(b.users, func(u models.User) bool { return u.ID == me.ID })
	if req.Name != "" {
		b.users[i].Name = req.Name
	}
	if req.Email != "" {
		b.users[i].Email = req.Email
	}
	if req.Password != "" {
		b.users[i].Password = req.Password
	}
	middleware.JSONResponse(w, http.StatusOK, b.users[i])
}

// Board

func (b *Backend) listPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	author := r.URL.Query().Get("author")
	posts := []models.Post{}
	for _, p := range b.posts {
		if author == "" || p.Author == author {
			posts = append(posts, p)
		}
	}
	middleware.JSONResponse(w, http.StatusOK, posts)
}

func (b *Backend) postIndex(w http.ResponseWriter, id string) int {
	i := slices.IndexFunc(b.posts, func(p models.Post) bool { return p.ID == id })
	if i < 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
	}
	return i
}

func (b *Backend) getPost(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.postIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, b.posts[i])
}

func (b *Backend) createPost(w http.ResponseWriter, r *http.Request) {
	var req models.PostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and body are required")
		return
	}

	p := models.Post{
		ID:        b.nextID(),
		Title:     req.Title,
		Body:      req.Body,
		Author:    me.Name,
		AuthorID:  me.ID,
		CreatedAt: time.Now().UTC(),
	}
	b.posts = append(b.posts, p)
	middleware.JSONResponse(w, http.StatusCreated, p)
}

func (b *Backend) updatePost(w http.ResponseWriter, r *http.Request) {
	var req models.PostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	i := b.postIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	if b.posts[i].AuthorID != me.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can edit")
		return
	}

	b.posts[i].Title = req.Title
	b.posts[i].Body = req.Body
	middleware.JSONResponse(w, http.StatusOK, b.posts[i])
}

func (b *Backend) deletePost(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	i := b.postIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	if b.posts[i].AuthorID != me.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can delete")
		return
	}

	id := b.posts[i].ID
	b.posts = slices.Delete(b.posts, i, i+1)
	b.comments = slices.DeleteFunc(b.comments, func(c models.Comment) bool { return c.PostID == id })
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listComments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	if b.postIndex(w, id) < 0 {
		return
	}
	comments := []models.Comment{}
	for _, c := range b.comments {
		if c.PostID == id {
			comments = append(comments, c)
		}
	}
	middleware.JSONResponse(w, http.StatusOK, comments)
}

func (b *Backend) createComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if b.postIndex(w, id) < 0 {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	c := models.Comment{
		ID:        b.nextID(),
		PostID:    id,
		Content:   req.Content,
		Author:    me.Name,
		AuthorID:  me.ID,
		CreatedAt: time.Now().UTC(),
	}
	b.comments = append(b.comments, c)
	middleware.JSONResponse(w, http.StatusCreated, c)
}

func (b *Backend) commentIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	me, ok := b.caller(w, r)
	if !ok {
		return -1, false
	}
	id := r.PathValue("id")
	i := slices.IndexFunc(b.comments, func(c models.Comment) bool { return c.ID == id })
	if i < 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return -1, false
	}
	if b.comments[i].AuthorID != me.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can change a comment")
		return -1, false
	}
	return i, true
}

func (b *Backend) updateComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.commentIndex(w, r)
	if !ok {
		return
	}
	b.comments[i].Content = req.Content
	middleware.JSONResponse(w, http.StatusOK, b.comments[i])
}

func (b *Backend) deleteComment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.commentIndex(w, r)
	if !ok {
		return
	}
	b.comments = slices.Delete(b.comments, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}

// Polls

func (b *Backend) listPolls(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	middleware.JSONResponse(w, http.StatusOK, append([]models.Poll{}, b.polls...))
}

func (b *Backend) pollIndex(w http.ResponseWriter, id string) int {
	i := slices.IndexFunc(b.polls, func(p models.Poll) bool { return p.ID == id })
	if i < 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	}
	return i
}

func (b *Backend) getPoll(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.pollIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, b.polls[i])
}

func (b *Backend) createPoll(w http.ResponseWriter, r *http.Request) {
	var req models.Poll
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	if req.Title == "" || len(req.Options) < models.MinOptions {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and at least 2 options are required")
		return
	}

	req.ID = b.nextID()
	req.Author = me.Name
	req.AuthorID = me.ID
	req.CreatedAt = time.Now().UTC()
	req.Options = b.withOptionIDs(req.Options)
	b.polls = append(b.polls, req)
	middleware.JSONResponse(w, http.StatusCreated, req)
}

func (b *Backend) updatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.Poll
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	i := b.pollIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	if b.polls[i].AuthorID != me.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can edit")
		return
	}

	cur := b.polls[i]
	cur.Title = req.Title
	cur.Description = req.Description
	cur.Type = req.Type
	cur.Options = b.withOptionIDs(req.Options)
	cur.TotalVotes = req.TotalVotes
	b.polls[i] = cur
	middleware.JSONResponse(w, http.StatusOK, cur)
}

func (b *Backend) deletePoll(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	i := b.pollIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	if b.polls[i].AuthorID != me.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can delete")
		return
	}
	b.polls = slices.Delete(b.polls, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) castVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.caller(w, r); !ok {
		return
	}
	i := b.pollIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}

	p := b.polls[i]
	if len(req.OptionIDs) == 0 || (p.Type != models.TypeMultiChoice && len(req.OptionIDs) != 1) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid selection")
		return
	}
	opts := slices.Clone(p.Options)
	for _, id := range req.OptionIDs {
		j := slices.IndexFunc(opts, func(o models.Option) bool { return o.ID == id })
		if j < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option_id: "+id)
			return
		}
		opts[j].Votes++
	}
	p.Options = opts
	p.TotalVotes++
	b.polls[i] = p
	middleware.JSONResponse(w, http.StatusOK, p)
}

// Surveys

func (b *Backend) listSurveys(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	middleware.JSONResponse(w, http.StatusOK, append([]models.Survey{}, b.surveys...))
}

func (b *Backend) surveyIndex(w http.ResponseWriter, id string) int {
	i := slices.IndexFunc(b.surveys, func(s models.Survey) bool { return s.ID == id })
	if i < 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
	}
	return i
}

func (b *Backend) getSurvey(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.surveyIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, b.surveys[i])
}

func (b *Backend) createSurvey(w http.ResponseWriter, r *http.Request) {
	var req models.Survey
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	if req.Title == "" || len(req.Questions) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and at least 1 question are required")
		return
	}

	req.ID = b.nextID()
	req.Author = me.Name
	req.AuthorID = me.ID
	req.CreatedAt = time.Now().UTC()
	b.surveys = append(b.surveys, req)
	middleware.JSONResponse(w, http.StatusCreated, req)
}

func (b *Backend) updateSurvey(w http.ResponseWriter, r *http.Request) {
	var req models.Survey
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	i := b.surveyIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	if b.surveys[i].AuthorID != me.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can edit")
		return
	}

	cur := b.surveys[i]
	cur.Title = req.Title
	cur.Description = req.Description
	cur.Questions = req.Questions
	b.surveys[i] = cur
	middleware.JSONResponse(w, http.StatusOK, cur)
}

func (b *Backend) deleteSurvey(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	me, ok := b.caller(w, r)
	if !ok {
		return
	}
	i := b.surveyIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}
	if b.surveys[i].AuthorID != me.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can delete")
		return
	}
	b.surveys = slices.Delete(b.surveys, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) submitResponse(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.caller(w, r); !ok {
		return
	}
	i := b.surveyIndex(w, r.PathValue("id"))
	if i < 0 {
		return
	}

	s := b.surveys[i]
	questions := slices.Clone(s.Questions)
	for qi, q := range questions {
		ans := req.Answers[q.ID]
		if !models.IsChoice(q.Type) {
			continue
		}
		opts := slices.Clone(q.Options)
		for oi := range opts {
			if slices.Contains(ans.OptionIDs, opts[oi].ID) {
				opts[oi].Votes++
			}
		}
		questions[qi].Options = opts
	}
	s.Questions = questions
	s.TotalRespondents++
	b.surveys[i] = s
	middleware.JSONResponse(w, http.StatusOK, s)
}
