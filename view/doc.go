// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package view holds the per-viewer state of a poll or survey page.

One Controller serves both kinds; Config carries the differences (list
path, results path, wording). A Controller fetches the subject through a
Source, decides whether the viewer is its author, has already taken part,
or may vote, and then routes input into vote.Selection values until
Submit.

	Loading ──fetch ok──▶ AuthorView        (viewer wrote it)
	        ├───────────▶ AlreadyVotedView  (guard has a record)
	        ├───────────▶ VotableView
	        └─fetch err─▶ ErrorView         (notify, go to list or login)

	VotableView ──submit ok──▶ AlreadyVotedView

After a successful submit the subject returned by the backend replaces the
local copy; counts are never recomputed on the client.

User-facing messages go to a Notifier and page changes to a Navigator, so
the controller can be driven from a terminal or a test Recorder alike.
*/
package view
