// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the community command-line client.

The client talks to a community backend (bulletin board, polls and surveys)
over its JSON API and keeps a small local store for the signed-in session
and the vote guard.

# Running

	community login -email me@example.com -password secret
	community polls
	community poll vote 12 2

Global flags go before the command:

	community -b http://localhost:8888/api -t redis -d redis://localhost:6379/0 polls

# Configuration

Every flag has an environment fallback, and a .env file is loaded first
when present (-env to choose another file):

  - BACKEND_URL (-b): backend base URL (default: http://localhost:8888/api)
  - STORE_TYPE (-t): sqlite, postgres or redis (default: sqlite)
  - STORE_URL (-d): store file or URL (default: community.db for sqlite)
  - LOG_LEVEL (-v): debug, info, warn or error (default: warn)

# Exit Codes

  - 0: the command succeeded
  - 1: configuration or store failure, or the command failed
  - 2: unknown command or bad arguments

# Architecture

  - router: command table and navigation hints
  - handlers: one handler per page (account, board, polls, surveys, dashboard)
  - view: the vote/submit state machine shared by polls and surveys
  - guard: advisory one-vote-per-user records (SQL or Redis)
  - vote: tallies and percentages
  - validate: form validation
  - api: backend client
  - auth: session persistence
  - middleware: HTTP logging and JSON helpers
  - models: wire types
  - db: local schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
