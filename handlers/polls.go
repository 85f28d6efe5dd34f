// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/models"
	"github.com/danielhkuo/quick-poll/service"
)

type PollHandler struct {
	svc *service.PollService
}

func NewPollHandler(svc *service.PollService) *PollHandler {
	return &PollHandler{svc: svc}
}

// CreatePoll handles POST /poll
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if !parseBody(w, r, &req) {
		return
	}

	// nil labels tell the service the field was not a list
	labels, err := req.OptionLabels()
	if errors.Is(err, models.ErrOptionLabel) && len(labels) >= service.MinOptions {
		// Enough options, but not all of them can be labels
		labels = nil
	}

	poll, err := h.svc.CreatePoll(r.Context(), req.Question, labels)
	switch {
	case errors.Is(err, service.ErrInvalidQuestion):
		middleware.ErrorResponse(w, http.StatusBadRequest, "No question entered.")
		return
	case errors.Is(err, service.ErrInvalidOptions):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Options is not valid.")
		return
	case errors.Is(err, service.ErrTooFewOptions):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please enter at least 2 options.")
		return
	case err != nil:
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error creating poll.")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.PollResponse{
		Message: models.MessagePollCreated,
		Poll:    poll,
	})
}

// GetPoll handles GET /poll
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.svc.GetCurrentPoll(r.Context())
	if errors.Is(err, service.ErrNoActivePoll) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No active poll")
		return
	}
	if err != nil {
		slog.Error("failed to get poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error fetching poll.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Vote handles POST /vote
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if !parseBody(w, r, &req) {
		return
	}

	// A missing or non-integer optionId is reported like an unknown id,
	// after the active poll check.
	optionID, _ := req.ID()

	poll, err := h.svc.CastVote(r.Context(), optionID)
	switch {
	case errors.Is(err, service.ErrNoActivePoll):
		middleware.ErrorResponse(w, http.StatusNotFound, "No active poll")
		return
	case errors.Is(err, service.ErrInvalidOptionID):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "option_id", optionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error recording vote.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{
		Message: models.MessageVoteRecorded,
		Poll:    poll,
	})
}

// Reset handles POST /reset
func (h *PollHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetPoll(r.Context()); err != nil {
		slog.Error("failed to reset poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error resetting poll.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: models.MessagePollReset,
	})
}

// parseBody decodes a JSON body into v. An empty body decodes as {}.
// On failure it writes a 400 and returns false.
func parseBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := middleware.ParseJSONBody(r, v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
	return false
}
