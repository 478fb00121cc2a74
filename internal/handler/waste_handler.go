package handler

import (
	"net/http"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/render"
	"cafeteria-dash/internal/service"

	"github.com/rs/zerolog"
)

// WasteHandler handles staff waste log requests.
type WasteHandler struct {
	service  service.WasteService
	renderer PanelRenderer
	logger   zerolog.Logger
}

// NewWasteHandler creates a new waste handler.
func NewWasteHandler(service service.WasteService, renderer PanelRenderer, logger zerolog.Logger) *WasteHandler {
	return &WasteHandler{
		service:  service,
		renderer: renderer,
		logger:   logger.With().Str("handler", "waste").Logger(),
	}
}

// Create handles POST /api/waste requests.
func (h *WasteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.WasteLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.LogWaste(&req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	refresh, err := h.renderer.Refresh(result.Refresh, render.Options{})
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{Result: result, Refresh: refresh})
}

// List handles GET /api/waste requests.
func (h *WasteHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.List())
}
