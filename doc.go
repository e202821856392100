// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the PulsePoll API server.

PulsePoll is a polling service: create a poll with options, share its ID,
collect one vote per voter, optionally classify each vote by sentiment,
and watch tallies update live over WebSocket.

# Starting the Server

The server reads configuration from environment variables (a local .env
file is honored) or CLI flags:

	DATABASE_URL=pulsepoll.db CREATOR_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 5000 -d pulsepoll.db --creator-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - CREATOR_KEY_SALT (--creator-salt): secret for creator key HMAC

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - store: poll persistence and the atomic vote recorder
  - notify: per-poll fan-out of tally updates to WebSocket subscribers
  - handlers: HTTP request handlers (polls, voting, results, live)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types and reason codes
  - auth: token generation and validation
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
