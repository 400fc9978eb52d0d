// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeung1234/community/middleware"
	"github.com/jeung1234/community/models"
)

func serve(b *Backend, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	b.Server.Config.Handler.ServeHTTP(w, req)
	return w
}

func TestBackendRequiresUserHeader(t *testing.T) {
	b := NewBackend(t)
	alice := b.AddUser("alice", "alice@example.com", "secret1")
	p := b.AddPoll(alice, models.Poll{
		Title:   "Lunch?",
		Options: []models.Option{{Text: "Pizza"}, {Text: "Sushi"}},
	})
	body := models.CastVoteRequest{OptionIDs: []string{p.Options[0].ID}}

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"no header", nil, http.StatusUnauthorized},
		{"unknown user", map[string]string{middleware.UserIDHeader: "nobody"}, http.StatusUnauthorized},
		{"known user", map[string]string{middleware.UserIDHeader: alice.ID}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(b, MakeRequest("POST", "/polls/"+p.ID+"/votes", body, tt.headers))
			AssertStatus(t, w, tt.want)
		})
	}
}

func TestBackendCastVote(t *testing.T) {
	b := NewBackend(t)
	alice := b.AddUser("alice", "alice@example.com", "secret1")
	p := b.AddPoll(alice, models.Poll{
		Title:   "Lunch?",
		Type:    models.TypeMultiChoice,
		Options: []models.Option{{Text: "Pizza"}, {Text: "Sushi"}, {Text: "Tacos"}},
	})
	headers := map[string]string{middleware.UserIDHeader: alice.ID}

	body := models.CastVoteRequest{OptionIDs: []string{p.Options[0].ID, p.Options[2].ID}}
	w := serve(b, MakeRequest("POST", "/polls/"+p.ID+"/votes", body, headers))
	AssertStatus(t, w, http.StatusOK)

	var got models.Poll
	AssertJSON(t, w, &got)
	if got.TotalVotes != 1 {
		t.Errorf("Expected 1 voter, got %d", got.TotalVotes)
	}
	wantVotes := []int{1, 0, 1}
	for i, o := range got.Options {
		if o.Votes != wantVotes[i] {
			t.Errorf("Option %d: expected %d votes, got %d", i, wantVotes[i], o.Votes)
		}
	}

	bad := models.CastVoteRequest{OptionIDs: []string{"missing"}}
	w = serve(b, MakeRequest("POST", "/polls/"+p.ID+"/votes", bad, headers))
	AssertStatus(t, w, http.StatusBadRequest)
}

func TestBackendFailInjection(t *testing.T) {
	b := NewBackend(t)

	b.Fail("GET /polls", http.StatusInternalServerError)
	AssertStatus(t, serve(b, MakeRequest("GET", "/polls", nil, nil)), http.StatusInternalServerError)

	b.Fail("GET /polls", 0)
	w := serve(b, MakeRequest("GET", "/polls", nil, nil))
	AssertStatus(t, w, http.StatusOK)

	var polls []models.Poll
	AssertJSON(t, w, &polls)
	if len(polls) != 0 {
		t.Errorf("Expected no polls, got %d", len(polls))
	}
	if got := b.Hits("GET /polls"); got != 2 {
		t.Errorf("Expected 2 hits, got %d", got)
	}
}

func TestBackendOwnership(t *testing.T) {
	b := NewBackend(t)
	alice := b.AddUser("alice", "alice@example.com", "secret1")
	bob := b.AddUser("bob", "bob@example.com", "secret2")
	post := b.AddPost(alice, "Hello", "First post")

	req := MakeRequest("DELETE", "/boards/"+post.ID, nil, map[string]string{middleware.UserIDHeader: bob.ID})
	AssertStatus(t, serve(b, req), http.StatusForbidden)

	req = MakeRequest("DELETE", "/boards/"+post.ID, nil, map[string]string{middleware.UserIDHeader: alice.ID})
	AssertStatus(t, serve(b, req), http.StatusNoContent)

	if _, ok := b.Post(post.ID); ok {
		t.Error("Expected the post to be gone")
	}
}
