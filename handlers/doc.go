// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the command handlers of the community client.

# Handler Types

Each handler is a struct holding a shared *Env (backend client, session,
vote guard, output, notifier and navigator):

  - AccountHandler: register, login, logout, mypage, profile
  - BoardHandler: posts and replies
  - PollHandler: list, show, vote, create, edit, delete
  - SurveyHandler: list, show, submit, results, create, edit, delete
  - DashboardHandler: the most voted polls and surveys

Handlers are created via constructor functions that accept the Env:

	pollHandler := handlers.NewPollHandler(env)

Every handler method has the signature

	func(ctx context.Context, args []string) error

and reports failures itself through env.Notifier before returning the
error, so callers only decide the exit status.

# Polls and Surveys

Show, vote and submit go through view.Controller, which decides whether
the viewer is the author, has already taken part (per the vote guard) or
may vote. Options and questions are addressed by their 1-based position:

	poll vote 12 2
	survey submit 7 -a 1=2 -a 2=1,3 -a 3="more coffee"

Forms for new questions use TYPE[!]:TEXT[:A|B|...], where TYPE is single,
multi, short or long and "!" marks the question required. New ids are
UUIDs. Edits replace options and questions by position, keeping the ids
and votes of those that survive.

# Output

Timestamps and counts are humanized. Result bars use block characters on
a terminal and '#' otherwise (see StyleFor).
*/
package handlers
