// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pulsepoll/auth"
	"github.com/danielhkuo/pulsepoll/cliparse"
	"github.com/danielhkuo/pulsepoll/middleware"
	"github.com/danielhkuo/pulsepoll/models"
	"github.com/danielhkuo/pulsepoll/notify"
	"github.com/danielhkuo/pulsepoll/store"
)

type VotingHandler struct {
	store *store.PollStore
	hub   *notify.Hub
	cfg   cliparse.Config
}

func NewVotingHandler(st *store.PollStore, hub *notify.Hub, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: st, hub: hub, cfg: cfg}
}

// Vote handles POST /polls/:id/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "poll_id is required")
		return
	}

	// Parse request
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "Invalid JSON")
		return
	}

	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "option_id is required")
		return
	}

	// Voter identity: body field, or the persisted guest token header.
	voterID := req.VoterID
	if voterID == "" {
		voterID = r.Header.Get("X-Voter-Token")
	}
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "voter_id is required")
		return
	}

	if req.Sentiment != "" && !models.ValidSentiment(req.Sentiment) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "sentiment must be positive, neutral, or negative")
		return
	}

	update, err := h.store.RecordVote(store.Vote{
		PollID:    pollID,
		OptionID:  req.OptionID,
		VoterID:   voterID,
		Sentiment: req.Sentiment,
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.CreatorKeySalt),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// Durability precedes both the broadcast and the acknowledgment: the
	// transaction committed before we get here.
	h.hub.Publish(pollID, *update)

	slog.Info("vote recorded",
		"poll_id", pollID,
		"option_id", req.OptionID,
		"total_votes", update.TotalVotes,
	)

	middleware.JSONResponse(w, http.StatusOK, update)
}

// VoterToken handles POST /voters
// Issues a persistent guest token; clients store it and send it with every
// vote so the one-vote check covers unauthenticated participants.
func (h *VotingHandler) VoterToken(w http.ResponseWriter, r *http.Request) {
	token, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonInternal, "Failed to issue voter token")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.VoterTokenResponse{
		VoterToken: token,
	})
}
