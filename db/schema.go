// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    creator_name TEXT NOT NULL,
    category TEXT,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    sentiment_tracking INTEGER NOT NULL DEFAULT 0,
    total_votes INTEGER NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
    created_at TIMESTAMP NOT NULL,
    closed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_status ON poll(status);
CREATE INDEX IF NOT EXISTS idx_poll_category ON poll(category);
CREATE INDEX IF NOT EXISTS idx_poll_created_at ON poll(created_at);

-- Options (position preserves creation order)
CREATE TABLE IF NOT EXISTS option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    positive INTEGER NOT NULL DEFAULT 0 CHECK (positive >= 0),
    neutral INTEGER NOT NULL DEFAULT 0 CHECK (neutral >= 0),
    negative INTEGER NOT NULL DEFAULT 0 CHECK (negative >= 0),
    UNIQUE (poll_id, position)
);

CREATE INDEX IF NOT EXISTS idx_option_poll_id ON option(poll_id);

-- Voter set: the primary key is the one-vote-per-voter invariant.
-- A duplicate vote loses here at commit time no matter what the
-- caller read earlier.
CREATE TABLE IF NOT EXISTS poll_voter (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    PRIMARY KEY (poll_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_poll_voter_poll_id ON poll_voter(poll_id);

-- Tags
CREATE TABLE IF NOT EXISTS poll_tag (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    tag TEXT NOT NULL,
    PRIMARY KEY (poll_id, tag)
);

CREATE INDEX IF NOT EXISTS idx_poll_tag_tag ON poll_tag(tag);
`
