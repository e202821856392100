// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pulsepoll/cliparse"
	"github.com/danielhkuo/pulsepoll/middleware"
	"github.com/danielhkuo/pulsepoll/models"
	"github.com/danielhkuo/pulsepoll/store"
)

type ResultsHandler struct {
	store *store.PollStore
	cfg   cliparse.Config
}

func NewResultsHandler(st *store.PollStore, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg}
}

// GetResults handles GET /polls/:id/results
// Returns tallies with per-option percentages. Unlike the raw poll fetch,
// this never exposes the voter set.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "poll_id is required")
		return
	}

	poll, err := h.store.GetPoll(pollID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	results := models.ResultsResponse{
		PollID:     poll.ID,
		Title:      poll.Title,
		Status:     poll.Status,
		TotalVotes: poll.TotalVotes,
		Options:    make([]models.OptionResult, 0, len(poll.Options)),
	}
	for _, opt := range poll.Options {
		res := models.OptionResult{
			ID:         opt.ID,
			Text:       opt.Text,
			Votes:      opt.Votes,
			Sentiments: opt.Sentiments,
		}
		if poll.TotalVotes > 0 {
			res.Percentage = float64(opt.Votes) / float64(poll.TotalVotes) * 100
		}
		results.Options = append(results.Options, res)
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
