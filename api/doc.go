// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package api is the client for the community REST backend.

# Identity

The client carries no session. Mutating calls identify the caller through
the X-USER-ID header, set with As:

	client := api.NewClient(cfg.BackendURL, nil)
	poll, err := client.As(user.ID).CastVote(ctx, pollID, optionIDs)

# Errors

Non-2xx answers come back as *Error, which unwraps to a sentinel:

  - 401, 403 → ErrUnauthorized
  - 404      → ErrNotFound
  - 400, 409, 422 → ErrInvalid

Network failures wrap ErrTransport. Other statuses match no sentinel.

# Votes

CastVote and SubmitResponse return the subject as the backend counts it
after the submission. Callers display that, not a local recomputation.
*/
package api
