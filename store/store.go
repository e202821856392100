// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pulsepoll/models"
)

var (
	ErrNotFound         = errors.New("poll not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrPollClosed       = errors.New("poll is closed")
	ErrAlreadyVoted     = errors.New("voter has already voted")
	ErrInvalidSentiment = errors.New("invalid sentiment value")
	ErrUnavailable      = errors.New("storage contention, try again")

	// errConflictRetry marks a write-write race detected by the driver.
	// It never escapes RecordVote.
	errConflictRetry = errors.New("concurrent write conflict")
)

// PollStore owns all poll persistence. Every mutation goes through it, and
// it is the sole authority for the tally invariants: total_votes equals the
// sum of option votes equals the number of poll_voter rows.
type PollStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PollStore {
	return &PollStore{db: db}
}

// ListFilter narrows and orders ListPolls results.
type ListFilter struct {
	Category string
	Tags     []string
	Sort     string // "newest" (default) or "votes"
}

// listLimit caps page size for ListPolls.
const listLimit = 20

// CreatePoll persists a new poll with its options and tags in one
// transaction. Missing poll and option IDs are assigned; status, tallies,
// and created_at are initialized here regardless of what the caller set.
func (s *PollStore) CreatePoll(p *models.Poll) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Status = models.StatusOpen
	p.Active = true
	p.TotalVotes = 0
	p.Voters = nil
	p.ClosedAt = nil
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, title, description, creator_name, category, status, sentiment_tracking, total_votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Title, p.Description, p.CreatorName, p.Category, p.Status, boolToInt(p.SentimentTracking), p.TotalVotes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for i := range p.Options {
		opt := &p.Options[i]
		if opt.ID == "" {
			opt.ID = uuid.NewString()
		}
		opt.Votes = 0
		if p.SentimentTracking {
			opt.Sentiments = &models.Sentiments{}
		} else {
			opt.Sentiments = nil
		}
		_, err = tx.Exec(`
			INSERT INTO option (id, poll_id, position, text, votes)
			VALUES ($1, $2, $3, $4, 0)
		`, opt.ID, p.ID, i, opt.Text)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	for _, tag := range p.Tags {
		_, err = tx.Exec(`
			INSERT INTO poll_tag (poll_id, tag)
			VALUES ($1, $2)
		`, p.ID, tag)
		if err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poll: %w", err)
	}
	return nil
}

// GetPoll loads a poll with its ordered options, voters, and tags.
// Returns ErrNotFound if no poll has the given ID.
func (s *PollStore) GetPoll(id string) (*models.Poll, error) {
	p, err := s.scanPollRow(s.db.QueryRow(`
		SELECT id, title, description, creator_name, category, status, sentiment_tracking, total_votes, created_at, closed_at
		FROM poll
		WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	if err := s.loadOptions(p); err != nil {
		return nil, err
	}
	if err := s.loadVoters(p); err != nil {
		return nil, err
	}
	if err := s.loadTags(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPolls returns up to 20 polls matching the filter, newest first by
// default or most-voted first with Sort "votes". Voter sets are not loaded
// for listings.
func (s *PollStore) ListPolls(f ListFilter) ([]models.Poll, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(f.Tags) > 0 {
		placeholders := make([]string, 0, len(f.Tags))
		for _, tag := range f.Tags {
			args = append(args, tag)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		where = append(where, fmt.Sprintf(
			"id IN (SELECT poll_id FROM poll_tag WHERE tag IN (%s))",
			strings.Join(placeholders, ", ")))
	}

	query := `
		SELECT id, title, description, creator_name, category, status, sentiment_tracking, total_votes, created_at, closed_at
		FROM poll`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	if f.Sort == "votes" {
		query += "\n\t\tORDER BY total_votes DESC, created_at DESC"
	} else {
		query += "\n\t\tORDER BY created_at DESC"
	}
	query += fmt.Sprintf("\n\t\tLIMIT %d", listLimit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		p, err := s.scanPollRow(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	for i := range polls {
		if err := s.loadOptions(&polls[i]); err != nil {
			return nil, err
		}
		if err := s.loadTags(&polls[i]); err != nil {
			return nil, err
		}
	}
	return polls, nil
}

// ClosePoll transitions an open poll to closed and stamps closed_at.
// Closing an already-closed poll returns ErrPollClosed.
func (s *PollStore) ClosePoll(id string) (*models.Poll, error) {
	var status string
	err := s.db.QueryRow(`SELECT status FROM poll WHERE id = $1`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if status != models.StatusOpen {
		return nil, ErrPollClosed
	}

	// The status guard in the WHERE clause makes concurrent closes safe:
	// only one update wins.
	res, err := s.db.Exec(`
		UPDATE poll
		SET status = $1, closed_at = $2
		WHERE id = $3 AND status = $4
	`, models.StatusClosed, time.Now().UTC(), id, models.StatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to close poll: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrPollClosed
	}

	return s.GetPoll(id)
}

// DeletePoll removes a poll and all dependent rows. Child tables are
// deleted explicitly so the operation does not depend on the driver
// enforcing ON DELETE CASCADE.
func (s *PollStore) DeletePoll(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM poll_tag WHERE poll_id = $1`,
		`DELETE FROM poll_voter WHERE poll_id = $1`,
		`DELETE FROM option WHERE poll_id = $1`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("failed to delete poll rows: %w", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *PollStore) scanPollRow(row rowScanner) (*models.Poll, error) {
	var (
		p        models.Poll
		desc     sql.NullString
		category sql.NullString
		tracking int
		closedAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Title, &desc, &p.CreatorName, &category,
		&p.Status, &tracking, &p.TotalVotes, &p.CreatedAt, &closedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan poll: %w", err)
	}

	p.Description = desc.String
	p.Category = category.String
	p.SentimentTracking = tracking != 0
	p.Active = p.Status == models.StatusOpen
	if closedAt.Valid {
		t := closedAt.Time
		p.ClosedAt = &t
	}
	return &p, nil
}

func (s *PollStore) loadOptions(p *models.Poll) error {
	rows, err := s.db.Query(`
		SELECT id, text, votes, positive, neutral, negative
		FROM option
		WHERE poll_id = $1
		ORDER BY position
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	p.Options = []models.Option{}
	for rows.Next() {
		var (
			opt           models.Option
			pos, neu, neg int
		)
		if err := rows.Scan(&opt.ID, &opt.Text, &opt.Votes, &pos, &neu, &neg); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		if p.SentimentTracking {
			opt.Sentiments = &models.Sentiments{Positive: pos, Neutral: neu, Negative: neg}
		}
		p.Options = append(p.Options, opt)
	}
	return rows.Err()
}

func (s *PollStore) loadVoters(p *models.Poll) error {
	rows, err := s.db.Query(`
		SELECT voter_id
		FROM poll_voter
		WHERE poll_id = $1
		ORDER BY voted_at
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	p.Voters = nil
	for rows.Next() {
		var voterID string
		if err := rows.Scan(&voterID); err != nil {
			return fmt.Errorf("failed to scan voter: %w", err)
		}
		p.Voters = append(p.Voters, voterID)
	}
	return rows.Err()
}

func (s *PollStore) loadTags(p *models.Poll) error {
	rows, err := s.db.Query(`
		SELECT tag
		FROM poll_tag
		WHERE poll_id = $1
		ORDER BY tag
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	p.Tags = nil
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		p.Tags = append(p.Tags, tag)
	}
	return rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
