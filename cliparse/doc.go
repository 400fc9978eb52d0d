// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles global command-line flags and configuration.

# Configuration

ParseFlags returns a Config and the arguments left after the global flags:

	cfg, rest, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - BackendURL: community REST backend (default: http://localhost:8888/api)
  - StoreType: local store, one of sqlite, postgres, redis (default: sqlite)
  - StoreURL: file or connection URL for the local store (default: community.db)
  - LogLevel: slog level (default: warn)

# CLI Flags

	-b    Backend URL
	-t    Store type
	-d    Store URL
	-v    Log level
	-env  Env file (default: .env)

# Environment Variables

Flags fall back to environment variables, which may come from the env file:

	BACKEND_URL → -b
	STORE_TYPE  → -t
	STORE_URL   → -d
	LOG_LEVEL   → -v

CLI flags take precedence over environment variables, and variables already
present in the environment take precedence over the env file.

# Validation

ParseFlags returns an error when the store type is unknown, when a
postgres or redis store has no URL, or when the log level does not parse.
*/
package cliparse
