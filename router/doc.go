// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the commands of the community client.

# Route Registration

NewRouter creates a Router with every command bound to its handler:

	r := router.NewRouter(env)
	err := r.Dispatch(ctx, []string{"poll", "vote", "12", "2"})

Command names have one or two words; Dispatch prefers the two-word match.

# Commands

Account:

	register -name NAME -email EMAIL -password PASSWORD
	login -email EMAIL -password PASSWORD
	logout
	mypage
	profile [-name NAME] [-email EMAIL] [-password PASSWORD]

Board:

	board list [-mine]
	board show|create|edit|delete ...
	reply add|edit|delete ...

Polls and surveys:

	polls
	poll show|vote|create|edit|delete ...
	surveys
	survey show|submit|results|create|edit|delete ...

Home:

	dashboard

# Navigation

Handlers announce page paths such as "/polls/12" or "/login". Navigator
turns them into the command to run next (see CommandFor).
*/
package router
