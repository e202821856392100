// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Precedence

CLI flags win over environment variables; environment variables win over
defaults. Secrets have no defaults and must be provided one way or the
other.

# Settings

  - -p / PORT: server port (default 5000)
  - -d / DATABASE_URL: connection string (required)
  - -t / DATABASE_TYPE: "sqlite" (default) or "postgres"
  - --creator-salt / CREATOR_KEY_SALT: secret for creator key HMAC (required)

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		// missing or invalid configuration
	}

A .env file in the working directory is loaded by main before parsing, so
local development needs no exported variables.
*/
package cliparse
