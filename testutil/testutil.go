// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pulsepoll/cliparse"
	"github.com/danielhkuo/pulsepoll/db"
	"github.com/danielhkuo/pulsepoll/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. A single pooled connection keeps the memory database alive and
// serializes writers, so concurrent tests exercise the retry path rather
// than tripping over SQLITE_BUSY.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           5000,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		CreatorKeySalt: "test-creator-salt",
	}
}

// CreateTestPoll inserts a poll with two options ("Option A", "Option B")
// directly into the database and returns the poll ID and option IDs.
// status should be models.StatusOpen or models.StatusClosed.
func CreateTestPoll(t *testing.T, conn *sql.DB, status string, sentimentTracking bool) (pollID string, optionIDs []string) {
	t.Helper()

	pollID = uuid.NewString()

	var closedAt *time.Time
	if status == models.StatusClosed {
		now := time.Now().UTC()
		closedAt = &now
	}

	tracking := 0
	if sentimentTracking {
		tracking = 1
	}

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, description, creator_name, status, sentiment_tracking, total_votes, created_at, closed_at)
		VALUES ($1, 'Test Poll', 'A test poll', 'TestUser', $2, $3, 0, $4, $5)
	`, pollID, status, tracking, time.Now().UTC(), closedAt)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, label := range []string{"Option A", "Option B"} {
		optionID := uuid.NewString()
		_, err := conn.Exec(`
			INSERT INTO option (id, poll_id, position, text, votes)
			VALUES ($1, $2, $3, $4, 0)
		`, optionID, pollID, i, label)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
		optionIDs = append(optionIDs, optionID)
	}

	return pollID, optionIDs
}

// CheckTallyInvariant fails the test if total_votes, the sum of option
// votes, and the voter-set size disagree for the poll.
func CheckTallyInvariant(t *testing.T, conn *sql.DB, pollID string) {
	t.Helper()

	var totalVotes int
	if err := conn.QueryRow(`SELECT total_votes FROM poll WHERE id = $1`, pollID).Scan(&totalVotes); err != nil {
		t.Fatalf("Failed to query total_votes: %v", err)
	}

	var optionSum int
	if err := conn.QueryRow(`SELECT COALESCE(SUM(votes), 0) FROM option WHERE poll_id = $1`, pollID).Scan(&optionSum); err != nil {
		t.Fatalf("Failed to sum option votes: %v", err)
	}

	var voterCount int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM poll_voter WHERE poll_id = $1`, pollID).Scan(&voterCount); err != nil {
		t.Fatalf("Failed to count voters: %v", err)
	}

	if totalVotes != optionSum || totalVotes != voterCount {
		t.Errorf("Tally invariant violated: total_votes=%d, sum(option.votes)=%d, |voters|=%d",
			totalVotes, optionSum, voterCount)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertReason checks that an error response carries the expected stable
// reason code.
func AssertReason(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != reason {
		t.Errorf("Expected reason %q, got %q (message: %q)", reason, resp.Error, resp.Message)
	}
}
