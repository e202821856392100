// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pulsepoll/auth"
	"github.com/danielhkuo/pulsepoll/cliparse"
	"github.com/danielhkuo/pulsepoll/middleware"
	"github.com/danielhkuo/pulsepoll/models"
	"github.com/danielhkuo/pulsepoll/store"
)

type PollHandler struct {
	store *store.PollStore
	cfg   cliparse.Config
}

func NewPollHandler(st *store.PollStore, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: st, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "Invalid JSON")
		return
	}

	// Validate input
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "title is required")
		return
	}
	if len(req.Options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "at least 2 options are required")
		return
	}
	options := make([]models.Option, 0, len(req.Options))
	for _, opt := range req.Options {
		text := strings.TrimSpace(opt.Text)
		if text == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "option text is required")
			return
		}
		options = append(options, models.Option{Text: text})
	}
	creatorName := strings.TrimSpace(req.CreatorName)
	if creatorName == "" {
		creatorName = "anonymous"
	}

	poll := models.Poll{
		Title:             req.Title,
		Description:       req.Description,
		CreatorName:       creatorName,
		Category:          req.Category,
		Tags:              req.Tags,
		SentimentTracking: req.SentimentTracking,
		Options:           options,
	}

	if err := h.store.CreatePoll(&poll); err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonInternal, "Failed to create poll")
		return
	}

	// Deterministic HMAC key; shown once, never stored.
	creatorKey := auth.GenerateCreatorKey(poll.ID, h.cfg.CreatorKeySalt)

	slog.Info("poll created", "poll_id", poll.ID, "creator", creatorName, "options", len(options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		Poll:       poll,
		CreatorKey: creatorKey,
	})
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := q.Get("sort")
	if sort == "" {
		sort = "newest"
	}
	if sort != "newest" && sort != "votes" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "sort must be newest or votes")
		return
	}

	filter := store.ListFilter{
		Category: q.Get("category"),
		Sort:     sort,
	}
	if tags := q.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	polls, err := h.store.ListPolls(filter)
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/:id
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// ClosePoll handles POST /polls/:id/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "poll_id is required")
		return
	}

	// Validate creator key
	creatorKey := r.Header.Get("X-Creator-Key")
	if err := auth.ValidateCreatorKey(pollID, creatorKey, h.cfg.CreatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonUnauthorized, "Invalid creator key")
		return
	}

	poll, err := h.store.ClosePoll(pollID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("poll closed", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, models.ClosePollResponse{Poll: *poll})
}

// DeletePoll handles DELETE /polls/:id
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "poll_id is required")
		return
	}

	// Validate creator key
	creatorKey := r.Header.Get("X-Creator-Key")
	if err := auth.ValidateCreatorKey(pollID, creatorKey, h.cfg.CreatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonUnauthorized, "Invalid creator key")
		return
	}

	if err := h.store.DeletePoll(pollID); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Poll deleted successfully",
	})
}
