package handler

import (
	"net/http"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/render"
	"cafeteria-dash/internal/service"

	"github.com/rs/zerolog"
)

// FeedbackHandler handles student vote and reality check requests.
type FeedbackHandler struct {
	service  service.FeedbackService
	stats    service.AggregationService
	renderer PanelRenderer
	logger   zerolog.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(
	service service.FeedbackService,
	stats service.AggregationService,
	renderer PanelRenderer,
	logger zerolog.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		service:  service,
		stats:    stats,
		renderer: renderer,
		logger:   logger.With().Str("handler", "feedback").Logger(),
	}
}

// CastVote handles POST /api/votes requests.
func (h *FeedbackHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req model.VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.CastVote(&req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	refresh, err := h.renderer.Refresh(result.Refresh, render.Options{VoteDay: result.Day})
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{Result: result, Refresh: refresh})
}

// GetVotes handles GET /api/votes/{day} requests.
// Unknown day keys yield an empty board.
func (h *FeedbackHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.VoteBoard(model.DayKey(r.PathValue("day"))))
}

// SubmitAccuracy handles POST /api/accuracy requests.
func (h *FeedbackHandler) SubmitAccuracy(w http.ResponseWriter, r *http.Request) {
	var req model.AccuracyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.SubmitAccuracy(&req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	refresh, err := h.renderer.Refresh(result.Refresh, render.Options{
		Messages: map[string]string{model.PanelAccuracy: result.Message},
	})
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{Result: result, Refresh: refresh})
}

// GetAccuracy handles GET /api/accuracy/{day} requests.
func (h *FeedbackHandler) GetAccuracy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Accuracy(model.DayKey(r.PathValue("day"))))
}
