// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeung1234/community/api"
	"github.com/jeung1234/community/auth"
	"github.com/jeung1234/community/guard"
	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/testutil"
	"github.com/jeung1234/community/view"
)

type testEnv struct {
	*Env
	backend *testutil.Backend
	guard   *guard.MemoryGuard
	out     *bytes.Buffer
	rec     *view.Recorder
	alice   models.User
	bob     models.User
}

// setupEnv starts a fake backend with two users, alice and bob, nobody
// signed in.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := testutil.NewBackend(t)
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	g := guard.NewMemoryGuard()
	out := &bytes.Buffer{}
	rec := &view.Recorder{}

	te := &testEnv{
		Env: &Env{
			Client:    api.NewClient(backend.URL(), nil),
			Session:   auth.NewHolder(auth.NewSQLStore(conn)),
			Guard:     g,
			Out:       out,
			Notifier:  rec,
			Navigator: rec,
			Style:     StyleFor(out),
		},
		backend: backend,
		guard:   g,
		out:     out,
		rec:     rec,
		alice:   backend.AddUser("alice", "alice@example.com", "secret1"),
		bob:     backend.AddUser("bob", "bob@example.com", "secret2"),
	}
	return te
}

func (te *testEnv) signIn(t *testing.T, u models.User) {
	t.Helper()
	password := map[string]string{te.alice.ID: "secret1", te.bob.ID: "secret2"}[u.ID]
	if _, err := te.Session.Login(context.Background(), te.Client, u.Email, password); err != nil {
		t.Fatalf("Login as %s failed: %v", u.Name, err)
	}
}

// lastID returns the id at the end of the last navigation path.
func (te *testEnv) lastID() string {
	p := te.rec.Path()
	return p[strings.LastIndex(p, "/")+1:]
}

func assertLevel(t *testing.T, rec *view.Recorder, want view.Level) {
	t.Helper()
	if got := rec.Last(); got.Level != want {
		t.Errorf("Expected %s notice, got %+v", want, got)
	}
}

func TestStyleFor(t *testing.T) {
	if got := StyleFor(&bytes.Buffer{}); got != ASCIIStyle {
		t.Errorf("Buffer should get ASCII style, got %+v", got)
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := StyleFor(f); got != ASCIIStyle {
		t.Errorf("Regular file should get ASCII style, got %+v", got)
	}
}

func TestChoice(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		want    int
		wantErr bool
	}{
		{"1", 3, 0, false},
		{" 3 ", 3, 2, false},
		{"0", 3, 0, true},
		{"4", 3, 0, true},
		{"x", 3, 0, true},
	}

	for _, tt := range tests {
		got, err := choice(tt.in, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("choice(%q, %d) error = %v, wantErr %v", tt.in, tt.n, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUsage) {
			t.Errorf("choice(%q) error should wrap ErrUsage, got %v", tt.in, err)
		}
		if err == nil && got != tt.want {
			t.Errorf("choice(%q, %d) = %d, want %d", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestByNewest(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		{ID: "old", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", CreatedAt: now},
		{ID: "mid", CreatedAt: now.Add(-time.Minute)},
	}

	got := byNewest(posts, postTime)
	want := []string{"new", "mid", "old"}
	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], p.ID)
		}
	}
	if posts[0].ID != "old" {
		t.Error("byNewest must not reorder its input")
	}
}

func TestCount(t *testing.T) {
	if got := count(1, "vote", "votes"); got != "1 vote" {
		t.Errorf("Got %q", got)
	}
	if got := count(12345, "vote", "votes"); got != "12,345 votes" {
		t.Errorf("Got %q", got)
	}
}

func TestParseFlagsAnyOrder(t *testing.T) {
	te := setupEnv(t)
	var title string
	fs := te.newFlagSet("x")
	fs.StringVar(&title, "title", "", "")

	rest, err := te.parse(fs, []string{"12", "-title", "hello", "extra"}, "x")
	if err != nil {
		t.Fatal(err)
	}
	if title != "hello" {
		t.Errorf("Expected title hello, got %q", title)
	}
	if len(rest) != 2 || rest[0] != "12" || rest[1] != "extra" {
		t.Errorf("Unexpected positionals %v", rest)
	}

	if _, err := te.parse(te.newFlagSet("y"), []string{"-nope"}, "y"); !errors.Is(err, ErrUsage) {
		t.Errorf("Expected ErrUsage for unknown flag, got %v", err)
	}
}
