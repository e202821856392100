// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, creator_name, category, tags,
    sentiment_tracking, options
  - VoteRequest: option_id, voter_id, sentiment

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll, creator_key
  - VoterTokenResponse: voter_token
  - ClosePollResponse: poll
  - ResultsResponse: poll_id, total_votes, per-option results
  - TallyUpdate: the broadcast payload after an accepted vote
  - ErrorResponse: error (stable reason code), message

# Domain Types

Internal data structures:

  - Poll: poll metadata, options, voters, tallies, lifecycle state
  - Option: voting option with label and counters
  - Sentiments: per-sentiment counters for one option

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Sentiments:

	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"

Reason codes (stable error taxonomy, surfaced verbatim to clients):

	NotFound, OptionNotFound, PollClosed, AlreadyVoted,
	ValidationError, Unauthorized, Unavailable, Internal
*/
package models
