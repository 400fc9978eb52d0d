// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jeung1234/community/models"
	"github.com/jeung1234/community/validate"
	"github.com/jeung1234/community/view"
)

const boardPath = "/boards"

type BoardHandler struct {
	env *Env
}

func NewBoardHandler(env *Env) *BoardHandler {
	return &BoardHandler{env: env}
}

func postTime(p models.Post) time.Time       { return p.CreatedAt }
func commentTime(c models.Comment) time.Time { return c.CreatedAt }

// List handles `board list [-mine]`
func (h *BoardHandler) List(ctx context.Context, args []string) error {
	var mine bool
	fs := h.env.newFlagSet("board list")
	fs.BoolVar(&mine, "mine", false, "Only my posts")
	if _, err := h.env.parse(fs, args, "board list [-mine]"); err != nil {
		return err
	}

	author := ""
	if mine {
		user, err := h.env.currentUser("see your posts")
		if err != nil {
			return err
		}
		author = user.Name
	}

	posts, err := h.env.Client.ListPosts(ctx, author)
	if err != nil {
		return h.env.fail(err, "Could not load the board.", "")
	}
	if len(posts) == 0 {
		h.env.printf("No posts yet.\n")
		return nil
	}
	for _, p := range byNewest(posts, postTime) {
		h.env.printf("#%-4s %-40s %-12s %s\n", p.ID, p.Title, p.Author, ago(p.CreatedAt))
	}
	return nil
}

// Show handles `board show <id>`
func (h *BoardHandler) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("board show ID")
	}

	post, err := h.env.Client.GetPost(ctx, args[0])
	if err != nil {
		return h.env.fail(err, "Could not load the post.", boardPath)
	}
	comments, err := h.env.Client.ListComments(ctx, post.ID)
	if err != nil {
		return h.env.fail(err, "Could not load the replies.", "")
	}

	h.env.printf("%s\n", post.Title)
	h.env.printf("by %s, %s\n\n", post.Author, ago(post.CreatedAt))
	h.env.printf("%s\n", post.Body)

	h.env.printf("\n%s\n", count(len(comments), "reply", "replies"))
	for _, c := range byNewest(comments, commentTime) {
		h.env.printf("  #%-4s %s (%s, %s)\n", c.ID, c.Content, c.Author, ago(c.CreatedAt))
	}
	return nil
}

// Create handles `board create -title T -body B`
func (h *BoardHandler) Create(ctx context.Context, args []string) error {
	var req models.PostRequest
	fs := h.env.newFlagSet("board create")
	fs.StringVar(&req.Title, "title", "", "Post title")
	fs.StringVar(&req.Body, "body", "", "Post body")
	if _, err := h.env.parse(fs, args, "board create -title TITLE -body BODY"); err != nil {
		return err
	}

	user, err := h.env.currentUser("write a post")
	if err != nil {
		return err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)
	req.Author = user.Name
	if err := validate.Post(req); err != nil {
		return h.env.fail(err, "Title and body are required.", "")
	}

	post, err := h.env.Client.As(user.ID).CreatePost(ctx, req)
	if err != nil {
		return h.env.fail(err, "Could not create the post.", "")
	}

	slog.Info("post created", "post_id", post.ID)
	h.env.Notifier.Notify(view.LevelSuccess, "Post created.")
	h.env.Navigator.Navigate(boardPath + "/" + post.ID)
	return nil
}

// Edit handles `board edit <id> [-title T] [-body B]`
func (h *BoardHandler) Edit(ctx context.Context, args []string) error {
	var title, body string
	fs := h.env.newFlagSet("board edit")
	fs.StringVar(&title, "title", "", "New title")
	fs.StringVar(&body, "body", "", "New body")
	rest, err := h.env.parse(fs, args, "board edit ID [-title TITLE] [-body BODY]")
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return h.env.usage("board edit ID [-title TITLE] [-body BODY]")
	}

	user, err := h.env.currentUser("edit a post")
	if err != nil {
		return err
	}

	post, err := h.env.Client.GetPost(ctx, rest[0])
	if err != nil {
		return h.env.fail(err, "Could not load the post.", boardPath)
	}
	if post.AuthorID != user.ID {
		h.env.Notifier.Notify(view.LevelError, "Only the author can edit this post.")
		h.env.Navigator.Navigate(boardPath + "/" + post.ID)
		return view.ErrNotAuthor
	}

	req := models.PostRequest{Title: post.Title, Body: post.Body, Author: post.Author}
	if t := strings.TrimSpace(title); t != "" {
		req.Title = t
	}
	if b := strings.TrimSpace(body); b != "" {
		req.Body = b
	}
	if err := validate.Post(req); err != nil {
		return h.env.fail(err, "Title and body are required.", "")
	}

	if _, err := h.env.Client.As(user.ID).UpdatePost(ctx, post.ID, req); err != nil {
		return h.env.fail(err, "Could not update the post.", "")
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Post updated.")
	h.env.Navigator.Navigate(boardPath + "/" + post.ID)
	return nil
}

// Delete handles `board delete <id>`
func (h *BoardHandler) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("board delete ID")
	}

	user, err := h.env.currentUser("delete a post")
	if err != nil {
		return err
	}

	post, err := h.env.Client.GetPost(ctx, args[0])
	if err != nil {
		return h.env.fail(err, "Could not load the post.", boardPath)
	}
	if post.AuthorID != user.ID {
		h.env.Notifier.Notify(view.LevelError, "Only the author can delete this post.")
		return view.ErrNotAuthor
	}

	if err := h.env.Client.As(user.ID).DeletePost(ctx, post.ID); err != nil {
		return h.env.fail(err, "Could not delete the post.", "")
	}

	slog.Info("post deleted", "post_id", post.ID)
	h.env.Notifier.Notify(view.LevelSuccess, "Post deleted.")
	h.env.Navigator.Navigate(boardPath)
	return nil
}

// Reply handles `reply add <post id> <text>`
func (h *BoardHandler) Reply(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return h.env.usage("reply add POST_ID TEXT")
	}

	user, err := h.env.currentUser("reply")
	if err != nil {
		return err
	}

	req := models.CommentRequest{Content: strings.TrimSpace(strings.Join(args[1:], " "))}
	if err := validate.Comment(req); err != nil {
		return h.env.fail(err, "A reply cannot be empty.", "")
	}

	if _, err := h.env.Client.As(user.ID).CreateComment(ctx, args[0], req); err != nil {
		return h.env.fail(err, "Could not add the reply.", "")
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Reply added.")
	h.env.Navigator.Navigate(boardPath + "/" + args[0])
	return nil
}

// EditReply handles `reply edit <reply id> <text>`. The backend checks
// authorship.
func (h *BoardHandler) EditReply(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return h.env.usage("reply edit REPLY_ID TEXT")
	}

	user, err := h.env.currentUser("edit a reply")
	if err != nil {
		return err
	}

	req := models.CommentRequest{Content: strings.TrimSpace(strings.Join(args[1:], " "))}
	if err := validate.Comment(req); err != nil {
		return h.env.fail(err, "A reply cannot be empty.", "")
	}

	c, err := h.env.Client.As(user.ID).UpdateComment(ctx, args[0], req)
	if err != nil {
		return h.env.fail(err, "Could not update the reply.", "")
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Reply updated.")
	h.env.Navigator.Navigate(boardPath + "/" + c.PostID)
	return nil
}

// DeleteReply handles `reply delete <reply id>`
func (h *BoardHandler) DeleteReply(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return h.env.usage("reply delete REPLY_ID")
	}

	user, err := h.env.currentUser("delete a reply")
	if err != nil {
		return err
	}

	if err := h.env.Client.As(user.ID).DeleteComment(ctx, args[0]); err != nil {
		return h.env.fail(err, "Could not delete the reply.", "")
	}

	h.env.Notifier.Notify(view.LevelSuccess, "Reply deleted.")
	return nil
}
