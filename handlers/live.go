// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/danielhkuo/pulsepoll/middleware"
	"github.com/danielhkuo/pulsepoll/models"
	"github.com/danielhkuo/pulsepoll/notify"
	"github.com/danielhkuo/pulsepoll/store"
)

type LiveHandler struct {
	store *store.PollStore
	hub   *notify.Hub
}

func NewLiveHandler(st *store.PollStore, hub *notify.Hub) *LiveHandler {
	return &LiveHandler{store: st, hub: hub}
}

// Subscribe handles GET /polls/:id/live
// Upgrades to a WebSocket and pushes a TallyUpdate JSON frame for every
// vote accepted on the poll while the connection is open. There is no
// replay: a client reconnecting after missing updates re-fetches the poll.
func (h *LiveHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "poll_id is required")
		return
	}

	// Reject unknown polls before upgrading
	if _, err := h.store.GetPoll(pollID); err != nil {
		writeStoreError(w, err)
		return
	}

	server := websocket.Server{
		// Non-browser clients omit the Origin header; accept them.
		Handshake: func(cfg *websocket.Config, req *http.Request) error { return nil },
		Handler: func(conn *websocket.Conn) {
			h.stream(conn, pollID)
		},
	}
	server.ServeHTTP(w, r)
}

func (h *LiveHandler) stream(conn *websocket.Conn, pollID string) {
	defer conn.Close()

	sub := h.hub.Subscribe(pollID)
	defer sub.Close()

	slog.Info("live subscriber connected", "poll_id", pollID)

	// Drain incoming frames so the read error tells us the client is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 64)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	}()

	enc := json.NewEncoder(conn)
	for {
		select {
		case update, ok := <-sub.Updates():
			if !ok {
				return
			}
			if err := enc.Encode(update); err != nil {
				slog.Info("live subscriber dropped", "poll_id", pollID, "error", err)
				return
			}
		case <-done:
			slog.Info("live subscriber disconnected", "poll_id", pollID)
			return
		}
	}
}
