package handler

import (
	"net/http"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/render"
	"cafeteria-dash/internal/service"

	"github.com/rs/zerolog"
)

// StatsHandler serves the catalog and the aggregated dashboard numbers.
type StatsHandler struct {
	stats    service.AggregationService
	renderer PanelRenderer
	logger   zerolog.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats service.AggregationService, renderer PanelRenderer, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		stats:    stats,
		renderer: renderer,
		logger:   logger.With().Str("handler", "stats").Logger(),
	}
}

// Dishes handles GET /api/dishes requests.
func (h *StatsHandler) Dishes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Dishes())
}

// Menu handles GET /api/menu/{day} requests. "today" resolves the current day.
func (h *StatsHandler) Menu(w http.ResponseWriter, r *http.Request) {
	day := model.DayKey(r.PathValue("day"))
	if day == "today" {
		day = h.stats.CurrentDay()
	}
	writeJSON(w, http.StatusOK, h.stats.MenuFor(day))
}

// Today handles GET /api/stats/today requests.
func (h *StatsHandler) Today(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Day    model.DayKey `json:"day"`
		Totals model.Totals `json:"totals"`
	}{h.stats.CurrentDay(), h.stats.TodayTotals()})
}

// Charts handles GET /api/charts requests. Both charts are rebuilt.
func (h *StatsHandler) Charts(w http.ResponseWriter, r *http.Request) {
	charts := h.renderer.RebuildCharts()
	writeJSON(w, http.StatusOK, map[string]*render.Chart{
		"wasteByDish": charts[render.ChartWasteByDish],
		"votesByDish": charts[render.ChartVotesByDish],
	})
}
