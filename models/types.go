// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Sentiment constants
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Stable rejection reason codes, returned verbatim in the "error" field of
// error responses so clients can branch on them.
const (
	ReasonNotFound       = "NotFound"
	ReasonOptionNotFound = "OptionNotFound"
	ReasonPollClosed     = "PollClosed"
	ReasonAlreadyVoted   = "AlreadyVoted"
	ReasonValidation     = "ValidationError"
	ReasonUnauthorized   = "Unauthorized"
	ReasonUnavailable    = "Unavailable"
	ReasonInternal       = "Internal"
)

// ValidSentiment reports whether s names one of the sentiment constants.
func ValidSentiment(s string) bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Request types

type CreatePollRequest struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	CreatorName       string                `json:"creator_name"`
	Category          string                `json:"category"`
	Tags              []string              `json:"tags"`
	SentimentTracking bool                  `json:"sentiment_tracking"`
	Options           []CreateOptionRequest `json:"options"`
}

type CreateOptionRequest struct {
	Text string `json:"text"`
}

type VoteRequest struct {
	OptionID  string `json:"option_id"`
	VoterID   string `json:"voter_id"`
	Sentiment string `json:"sentiment,omitempty"`
}

// Response types

type CreatePollResponse struct {
	Poll       Poll   `json:"poll"`
	CreatorKey string `json:"creator_key"`
}

type VoterTokenResponse struct {
	VoterToken string `json:"voter_token"`
}

type ClosePollResponse struct {
	Poll Poll `json:"poll"`
}

type ResultsResponse struct {
	PollID     string         `json:"poll_id"`
	Title      string         `json:"title"`
	Status     string         `json:"status"`
	TotalVotes int            `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

type OptionResult struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Votes      int         `json:"votes"`
	Percentage float64     `json:"percentage"`
	Sentiments *Sentiments `json:"sentiments,omitempty"`
}

// ErrorResponse carries a stable reason code plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Poll struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	CreatorName       string     `json:"creator_name"`
	Category          string     `json:"category,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	Status            string     `json:"status"`
	Active            bool       `json:"active"`
	SentimentTracking bool       `json:"sentiment_tracking"`
	Options           []Option   `json:"options"`
	Voters            []string   `json:"voters,omitempty"`
	TotalVotes        int        `json:"total_votes"`
	CreatedAt         time.Time  `json:"created_at"`
	ClosedAt          *time.Time `json:"closed_at,omitempty"`
}

type Option struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Votes      int         `json:"votes"`
	Sentiments *Sentiments `json:"sentiments,omitempty"`
}

// Sentiments holds per-sentiment vote counts for one option. The counts sum
// to the option's vote count when sentiment tracking is enabled.
type Sentiments struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// TallyUpdate is the payload published to live subscribers after every
// accepted vote, and the body of a successful vote response.
type TallyUpdate struct {
	PollID     string      `json:"poll_id"`
	OptionID   string      `json:"option_id"`
	Votes      int         `json:"votes"`
	Sentiments *Sentiments `json:"sentiments,omitempty"`
	TotalVotes int         `json:"total_votes"`
}
