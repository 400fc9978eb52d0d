// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth keeps track of who is signed in.

# Sessions

Components that need the current user take a Session:

	type Session interface {
		User() (models.User, bool)
	}

Holder is the real implementation; Static is a fixed one for tests.

# Login

Login asks the backend for a user matching the credentials and, on a
match, stores the user with a fresh opaque token:

	holder := auth.NewHolder(auth.NewSQLStore(conn))
	user, err := holder.Login(ctx, client, email, password)

No match returns ErrBadCredentials. The token is random 24 bytes, URL-safe
base64 without padding. There is no refresh or rotation; Logout clears it.

# Stores

  - SQLStore: session table of the local SQL store
  - RedisStore: key community:session:default

Restore reloads the session at start-up:

	if err := holder.Restore(ctx); err != nil { ... }
*/
package auth
