// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package guard implements the duplicate-submission guard for polls and
surveys.

The guard is advisory. It stops a user from voting twice by accident from
the same machine; it does not stop anyone determined to vote twice, since
the records sit in a local store the user controls. Authoritative
duplicate prevention has to live on the backend.

# Backends

  - SQLGuard: vote_record table in the local SQL store (sqlite or postgres)
  - RedisGuard: hash community:votes:<kind>:<id>, field per user id
  - MemoryGuard: process-local, for tests

# Keys

Records are keyed by (kind, subject id, user id). A record written for one
user is never consulted for another user signed into the same machine.
*/
package guard
