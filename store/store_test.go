// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"testing"

	"github.com/danielhkuo/pulsepoll/models"
	"github.com/danielhkuo/pulsepoll/testutil"
)

func TestCreateAndGetPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	st := New(conn)

	poll := models.Poll{
		Title:             "Favorite Language",
		Description:       "Pick one",
		CreatorName:       "alice",
		Category:          "tech",
		Tags:              []string{"go", "programming"},
		SentimentTracking: true,
		Options: []models.Option{
			{Text: "Go"},
			{Text: "Rust"},
			{Text: "Python"},
		},
	}

	if err := st.CreatePoll(&poll); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	if poll.ID == "" {
		t.Fatal("Expected poll ID to be assigned")
	}
	if poll.Status != models.StatusOpen || !poll.Active {
		t.Errorf("Expected new poll to be open, got status=%q active=%v", poll.Status, poll.Active)
	}

	got, err := st.GetPoll(poll.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}

	if got.Title != "Favorite Language" || got.CreatorName != "alice" || got.Category != "tech" {
		t.Errorf("Poll fields mismatch: %+v", got)
	}
	if !got.SentimentTracking {
		t.Error("Expected sentiment tracking enabled")
	}
	if got.TotalVotes != 0 {
		t.Errorf("Expected zero total votes, got %d", got.TotalVotes)
	}
	if len(got.Voters) != 0 {
		t.Errorf("Expected empty voter set, got %v", got.Voters)
	}
	if len(got.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", got.Tags)
	}

	// Option order must match creation order
	if len(got.Options) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(got.Options))
	}
	for i, want := range []string{"Go", "Rust", "Python"} {
		if got.Options[i].Text != want {
			t.Errorf("Option %d: expected %q, got %q", i, want, got.Options[i].Text)
		}
		if got.Options[i].Votes != 0 {
			t.Errorf("Option %d: expected zero votes", i)
		}
		if got.Options[i].Sentiments == nil {
			t.Errorf("Option %d: expected sentiment counters with tracking enabled", i)
		}
	}
}

func TestGetPollNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	st := New(conn)

	if _, err := st.GetPoll("nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSentimentsOmittedWhenTrackingDisabled(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	st := New(conn)

	poll := models.Poll{
		Title:   "Plain poll",
		Options: []models.Option{{Text: "A"}, {Text: "B"}},
	}
	if err := st.CreatePoll(&poll); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	got, err := st.GetPoll(poll.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	for i, opt := range got.Options {
		if opt.Sentiments != nil {
			t.Errorf("Option %d: expected nil sentiments without tracking", i)
		}
	}
}

func TestListPolls(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	st := New(conn)

	mkpoll := func(title, category string, tags []string) models.Poll {
		p := models.Poll{
			Title:    title,
			Category: category,
			Tags:     tags,
			Options:  []models.Option{{Text: "A"}, {Text: "B"}},
		}
		if err := st.CreatePoll(&p); err != nil {
			t.Fatalf("CreatePoll failed: %v", err)
		}
		return p
	}

	mkpoll("Tech poll", "tech", []string{"go"})
	mkpoll("Food poll", "food", []string{"pizza", "lunch"})
	mkpoll("Another tech poll", "tech", []string{"rust", "go"})

	all, err := st.ListPolls(ListFilter{})
	if err != nil {
		t.Fatalf("ListPolls failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 polls, got %d", len(all))
	}

	tech, err := st.ListPolls(ListFilter{Category: "tech"})
	if err != nil {
		t.Fatalf("ListPolls by category failed: %v", err)
	}
	if len(tech) != 2 {
		t.Errorf("Expected 2 tech polls, got %d", len(tech))
	}

	tagged, err := st.ListPolls(ListFilter{Tags: []string{"go"}})
	if err != nil {
		t.Fatalf("ListPolls by tag failed: %v", err)
	}
	if len(tagged) != 2 {
		t.Errorf("Expected 2 polls tagged go, got %d", len(tagged))
	}

	none, err := st.ListPolls(ListFilter{Category: "sports"})
	if err != nil {
		t.Fatalf("ListPolls failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no sports polls, got %d", len(none))
	}
}

func TestListPollsSortByVotes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	st := New(conn)

	quiet := models.Poll{Title: "Quiet", Options: []models.Option{{Text: "A"}, {Text: "B"}}}
	if err := st.CreatePoll(&quiet); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	busy := models.Poll{Title: "Busy", Options: []models.Option{{Text: "A"}, {Text: "B"}}}
	if err := st.CreatePoll(&busy); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	for _, voter := range []string{"v1", "v2", "v3"} {
		if _, err := st.RecordVote(Vote{PollID: busy.ID, OptionID: busy.Options[0].ID, VoterID: voter}); err != nil {
			t.Fatalf("RecordVote failed: %v", err)
		}
	}

	polls, err := st.ListPolls(ListFilter{Sort: "votes"})
	if err != nil {
		t.Fatalf("ListPolls failed: %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(polls))
	}
	if polls[0].Title != "Busy" {
		t.Errorf("Expected most-voted poll first, got %q", polls[0].Title)
	}
}

func TestClosePoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	st := New(conn)

	poll := models.Poll{Title: "Closing", Options: []models.Option{{Text: "A"}, {Text: "B"}}}
	if err := st.CreatePoll(&poll); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	closed, err := st.ClosePoll(poll.ID)
	if err != nil {
		t.Fatalf("ClosePoll failed: %v", err)
	}
	if closed.Status != models.StatusClosed || closed.Active {
		t.Errorf("Expected closed poll, got status=%q active=%v", closed.Status, closed.Active)
	}
	if closed.ClosedAt == nil {
		t.Error("Expected closed_at to be set")
	}

	// Closing again is a conflict
	if _, err := st.ClosePoll(poll.ID); !errors.Is(err, ErrPollClosed) {
		t.Errorf("Expected ErrPollClosed on double close, got %v", err)
	}

	// Closing an unknown poll
	if _, err := st.ClosePoll("nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeletePoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	st := New(conn)

	poll := models.Poll{
		Title:   "Doomed",
		Tags:    []string{"temp"},
		Options: []models.Option{{Text: "A"}, {Text: "B"}},
	}
	if err := st.CreatePoll(&poll); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	if _, err := st.RecordVote(Vote{PollID: poll.ID, OptionID: poll.Options[0].ID, VoterID: "v1"}); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}

	if err := st.DeletePoll(poll.ID); err != nil {
		t.Fatalf("DeletePoll failed: %v", err)
	}

	if _, err := st.GetPoll(poll.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Dependent rows are gone too
	for _, table := range []string{"option", "poll_voter", "poll_tag"} {
		var count int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE poll_id = $1`, poll.ID).Scan(&count); err != nil {
			t.Fatalf("Failed to count %s rows: %v", table, err)
		}
		if count != 0 {
			t.Errorf("Expected no %s rows after delete, got %d", table, count)
		}
	}

	if err := st.DeletePoll(poll.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}
