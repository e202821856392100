// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Helpers

  - WithLogging: per-request slog entries with method, path, and duration
  - CORS: permissive cross-origin headers plus OPTIONS preflight handling
  - JSONResponse / ErrorResponse: JSON writing, with ErrorResponse carrying
    a stable machine-readable reason code in the "error" field
  - ParseJSONBody: request body decoding
  - GetClientIP: X-Forwarded-For / X-Real-IP / RemoteAddr extraction
*/
package middleware
