// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the local SQL store and creates its schema.

# Opening

Open picks the driver from the store type and creates the schema:

	conn, err := db.Open(cfg.StoreType, cfg.StoreURL)

SQLite (modernc.org/sqlite) is the default and needs no server. Postgres
(lib/pq) suits machines shared by several people. The redis store type is
not handled here; see package guard and package auth.

# Tables

  - vote_record: one participation marker per (kind, subject_id, user_id)
  - session: the signed-in user and its opaque token

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.
*/
package db
