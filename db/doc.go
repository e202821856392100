// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

The schema consists of four tables:

  - poll: poll metadata, lifecycle status, and the total_votes aggregate
  - option: voting options with vote and sentiment counters
  - poll_voter: the set of voter identifiers that have voted on a poll
  - poll_tag: free-form tags for list filtering

The PRIMARY KEY (poll_id, voter_id) on poll_voter is the storage-level
enforcement of one vote per voter: the vote transaction inserts into it
unconditionally and treats a constraint violation as a duplicate.

# Portability

The DDL and all queries in the store run unchanged on SQLite
(modernc.org/sqlite) and PostgreSQL (lib/pq). Placeholders use the $N
style with parameters numbered in ascending order of first use, which
both drivers bind positionally.

# Usage

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}

CreateSchema is idempotent (IF NOT EXISTS) and safe to run on every boot.
*/
package db
