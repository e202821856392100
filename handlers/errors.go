// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pulsepoll/middleware"
	"github.com/danielhkuo/pulsepoll/models"
	"github.com/danielhkuo/pulsepoll/store"
)

// writeStoreError maps store sentinels to HTTP statuses and stable reason
// codes. Anything unrecognized is an internal storage failure.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound, "Poll not found")
	case errors.Is(err, store.ErrOptionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonOptionNotFound, "Option not found")
	case errors.Is(err, store.ErrPollClosed):
		middleware.ErrorResponse(w, http.StatusConflict, models.ReasonPollClosed, "Poll is closed")
	case errors.Is(err, store.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonAlreadyVoted, "Already voted")
	case errors.Is(err, store.ErrInvalidSentiment):
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonValidation, "sentiment must be positive, neutral, or negative")
	case errors.Is(err, store.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, models.ReasonUnavailable, "Try again")
	default:
		slog.Error("storage failure", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonInternal, "Database error")
	}
}
