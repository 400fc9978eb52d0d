// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/jeung1234/community/cliparse"
)

// Open connects to the local SQL store and makes sure the schema exists.
func Open(storeType, storeURL string) (*sql.DB, error) {
	var driver string
	switch storeType {
	case cliparse.StoreSQLite:
		driver = "sqlite"
	case cliparse.StorePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("store type %q is not a SQL store", storeType)
	}

	conn, err := sql.Open(driver, storeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", storeType, err)
	}

	// SQLite serializes writers anyway; one connection also keeps
	// :memory: databases alive across calls.
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach %s store: %w", storeType, err)
	}

	if err := CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the local store.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Participation markers
CREATE TABLE IF NOT EXISTS vote_record (
    kind TEXT NOT NULL CHECK (kind IN ('poll', 'survey')),
    subject_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    option_ids TEXT NOT NULL DEFAULT '[]',
    recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (kind, subject_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_record_subject ON vote_record(kind, subject_id);

-- Signed-in session
CREATE TABLE IF NOT EXISTS session (
    name TEXT PRIMARY KEY,
    token TEXT NOT NULL,
    user_json TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
