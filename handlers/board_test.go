// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/auth"
	"github.com/jeung1234/community/validate"
	"github.com/jeung1234/community/view"
)

func TestCreatePostRequiresLogin(t *testing.T) {
	te := setupEnv(t)
	h := NewBoardHandler(te.Env)

	err := h.Create(context.Background(), []string{"-title", "Hi", "-body", "there"})
	if !errors.Is(err, auth.ErrNotSignedIn) {
		t.Errorf("Expected ErrNotSignedIn, got %v", err)
	}
	if te.rec.Path() != view.LoginPath {
		t.Errorf("Expected navigation to login, got %q", te.rec.Path())
	}
	if n := te.backend.Hits("POST /boards"); n != 0 {
		t.Errorf("Expected no request, got %d", n)
	}
}

func TestBoardFlow(t *testing.T) {
	te := setupEnv(t)
	h := NewBoardHandler(te.Env)
	ctx := context.Background()
	te.signIn(t, te.alice)

	if err := h.Create(ctx, []string{"-title", "  ", "-body", "x"}); !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("Expected validation error, got %v", err)
	}

	if err := h.Create(ctx, []string{"-title", "Hello board", "-body", "First post"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	id := te.lastID()
	post, ok := te.backend.Post(id)
	if !ok || post.AuthorID != te.alice.ID {
		t.Fatalf("Expected post by alice, got %+v ok=%v", post, ok)
	}

	if err := h.Reply(ctx, []string{id, "nice", "post"}); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	comments := te.backend.Comments(id)
	if len(comments) != 1 || comments[0].Content != "nice post" {
		t.Fatalf("Unexpected comments %+v", comments)
	}

	te.out.Reset()
	if err := h.List(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(te.out.String(), "Hello board") {
		t.Errorf("List output missing post:\n%s", te.out.String())
	}

	te.out.Reset()
	if err := h.Show(ctx, []string{id}); err != nil {
		t.Fatal(err)
	}
	out := te.out.String()
	if !strings.Contains(out, "First post") || !strings.Contains(out, "1 reply") || !strings.Contains(out, "nice post") {
		t.Errorf("Unexpected show output:\n%s", out)
	}

	if err := h.Edit(ctx, []string{id, "-body", "Edited"}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	post, _ = te.backend.Post(id)
	if post.Title != "Hello board" || post.Body != "Edited" {
		t.Errorf("Edit should only change the body, got %+v", post)
	}

	if err := h.EditReply(ctx, []string{comments[0].ID, "very", "nice"}); err != nil {
		t.Fatalf("EditReply failed: %v", err)
	}
	if got := te.backend.Comments(id)[0].Content; got != "very nice" {
		t.Errorf("Expected edited reply, got %q", got)
	}
	if te.rec.Path() != "/boards/"+id {
		t.Errorf("Expected navigation back to the post, got %q", te.rec.Path())
	}

	if err := h.DeleteReply(ctx, []string{comments[0].ID}); err != nil {
		t.Fatalf("DeleteReply failed: %v", err)
	}
	if n := len(te.backend.Comments(id)); n != 0 {
		t.Errorf("Expected no comments, got %d", n)
	}

	if err := h.Delete(ctx, []string{id}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := te.backend.Post(id); ok {
		t.Error("Post should be deleted")
	}
	if te.rec.Path() != boardPath {
		t.Errorf("Expected navigation to %s, got %q", boardPath, te.rec.Path())
	}
}

func TestPostAuthorOnly(t *testing.T) {
	te := setupEnv(t)
	h := NewBoardHandler(te.Env)
	ctx := context.Background()
	post := te.backend.AddPost(te.alice, "Alice's", "body")
	reply := te.backend.AddComment(te.alice, post.ID, "mine")
	te.signIn(t, te.bob)

	if err := h.Edit(ctx, []string{post.ID, "-title", "Hijacked"}); !errors.Is(err, view.ErrNotAuthor) {
		t.Errorf("Expected ErrNotAuthor on edit, got %v", err)
	}
	if err := h.Delete(ctx, []string{post.ID}); !errors.Is(err, view.ErrNotAuthor) {
		t.Errorf("Expected ErrNotAuthor on delete, got %v", err)
	}
	if n := te.backend.Hits("PUT /boards/{id}") + te.backend.Hits("DELETE /boards/{id}"); n != 0 {
		t.Errorf("Expected no mutation requests, got %d", n)
	}

	// Reply ownership is enforced by the backend
	if err := h.DeleteReply(ctx, []string{reply.ID}); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized from backend, got %v", err)
	}
	if te.rec.Path() != view.LoginPath {
		t.Errorf("Expected navigation to login, got %q", te.rec.Path())
	}
}

func TestShowMissingPost(t *testing.T) {
	te := setupEnv(t)
	h := NewBoardHandler(te.Env)

	if err := h.Show(context.Background(), []string{"999"}); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if te.rec.Path() != boardPath {
		t.Errorf("Expected navigation to %s, got %q", boardPath, te.rec.Path())
	}
	assertLevel(t, te.rec, view.LevelError)
}

func TestListBoardServerError(t *testing.T) {
	te := setupEnv(t)
	h := NewBoardHandler(te.Env)
	te.backend.Fail("GET /boards", http.StatusInternalServerError)

	err := h.List(context.Background(), nil)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected *api.Error with status 500, got %v", err)
	}
	if msg := te.rec.Last().Message; !strings.Contains(msg, "injected failure") {
		t.Errorf("Expected backend message in notice, got %q", msg)
	}
}
