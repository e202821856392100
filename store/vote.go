// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/pulsepoll/models"
)

// Vote is one vote attempt against a poll.
type Vote struct {
	PollID    string
	OptionID  string
	VoterID   string
	Sentiment string // empty, or one of the models sentiment constants
	IPHash    string
	UserAgent string
}

// maxVoteRetries bounds how often a vote is replayed after the driver
// reports a write conflict before giving up with ErrUnavailable.
const maxVoteRetries = 3

// RecordVote applies a vote atomically. Validation happens in a fixed
// order, each step with its own error: poll must exist (ErrNotFound), be
// open (ErrPollClosed), the option must belong to it (ErrOptionNotFound),
// and the voter must not have voted before (ErrAlreadyVoted).
//
// On acceptance the option counter, the sentiment counter (when tracking
// is enabled and a sentiment was supplied), the poll total, and the voter
// row commit as one transaction. A rejected or failed call changes
// nothing. Conflicting concurrent writes are retried internally; the
// duplicate-voter decision itself rests on the poll_voter primary key, so
// at most one of two racing attempts by the same voter can ever commit.
func (s *PollStore) RecordVote(v Vote) (*models.TallyUpdate, error) {
	if v.Sentiment != "" && !models.ValidSentiment(v.Sentiment) {
		return nil, ErrInvalidSentiment
	}

	for attempt := 0; attempt < maxVoteRetries; attempt++ {
		update, err := s.applyVote(v)
		if !errors.Is(err, errConflictRetry) {
			return update, err
		}
		// Linear backoff before replaying the read-check-write sequence.
		time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
	}

	slog.Warn("vote retries exhausted", "poll_id", v.PollID, "option_id", v.OptionID)
	return nil, ErrUnavailable
}

// applyVote runs one attempt of the vote transaction.
func (s *PollStore) applyVote(v Vote) (*models.TallyUpdate, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, s.classify(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var (
		status   string
		tracking int
	)
	err = tx.QueryRow(`
		SELECT status, sentiment_tracking FROM poll WHERE id = $1
	`, v.PollID).Scan(&status, &tracking)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.classify(err, "failed to query poll")
	}
	if status != models.StatusOpen {
		return nil, ErrPollClosed
	}

	var optionExists bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM option WHERE id = $1 AND poll_id = $2)
	`, v.OptionID, v.PollID).Scan(&optionExists)
	if err != nil {
		return nil, s.classify(err, "failed to query option")
	}
	if !optionExists {
		return nil, ErrOptionNotFound
	}

	// The conditional insert carries the whole check-then-act burden: the
	// primary key rejects a voter that slipped in after the read above.
	_, err = tx.Exec(`
		INSERT INTO poll_voter (poll_id, voter_id, voted_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5)
	`, v.PollID, v.VoterID, time.Now().UTC(), v.IPHash, v.UserAgent)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, s.classify(err, "failed to insert voter")
	}

	withSentiment := tracking != 0 && v.Sentiment != ""
	if withSentiment {
		// Sentiment was validated against the constants, so it is safe to
		// splice in as a column name.
		q := fmt.Sprintf(`UPDATE option SET votes = votes + 1, %s = %s + 1 WHERE id = $1`,
			v.Sentiment, v.Sentiment)
		_, err = tx.Exec(q, v.OptionID)
	} else {
		_, err = tx.Exec(`UPDATE option SET votes = votes + 1 WHERE id = $1`, v.OptionID)
	}
	if err != nil {
		return nil, s.classify(err, "failed to update option tally")
	}

	_, err = tx.Exec(`UPDATE poll SET total_votes = total_votes + 1 WHERE id = $1`, v.PollID)
	if err != nil {
		return nil, s.classify(err, "failed to update poll total")
	}

	update := &models.TallyUpdate{PollID: v.PollID, OptionID: v.OptionID}
	var pos, neu, neg int
	err = tx.QueryRow(`
		SELECT votes, positive, neutral, negative FROM option WHERE id = $1
	`, v.OptionID).Scan(&update.Votes, &pos, &neu, &neg)
	if err != nil {
		return nil, s.classify(err, "failed to read option tally")
	}
	err = tx.QueryRow(`SELECT total_votes FROM poll WHERE id = $1`, v.PollID).Scan(&update.TotalVotes)
	if err != nil {
		return nil, s.classify(err, "failed to read poll total")
	}
	if tracking != 0 {
		update.Sentiments = &models.Sentiments{Positive: pos, Neutral: neu, Negative: neg}
	}

	if err := tx.Commit(); err != nil {
		return nil, s.classify(err, "failed to commit vote")
	}
	return update, nil
}

// classify turns driver errors into errConflictRetry when the failure is a
// transient write conflict, and wraps everything else.
func (s *PollStore) classify(err error, msg string) error {
	if isRetryable(err) {
		return errConflictRetry
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUniqueViolation matches constraint errors from both supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") || // modernc.org/sqlite
		strings.Contains(s, "duplicate key value violates unique constraint") // lib/pq
}

// isRetryable matches transient contention errors from both supported
// drivers: SQLite busy/locked states and PostgreSQL serialization or
// deadlock failures.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "database is locked") ||
		strings.Contains(s, "database table is locked") ||
		strings.Contains(s, "SQLITE_BUSY") ||
		strings.Contains(s, "could not serialize access") ||
		strings.Contains(s, "deadlock detected")
}
