package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/render"
	"cafeteria-dash/internal/service"

	"github.com/rs/zerolog"
)

const accuracyFieldPrefix = "acc-"

// DashboardHandler serves the HTML dashboard and its form posts.
type DashboardHandler struct {
	feedback service.FeedbackService
	waste    service.WasteService
	renderer PanelRenderer
	logger   zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(
	feedback service.FeedbackService,
	waste service.WasteService,
	renderer PanelRenderer,
	logger zerolog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		feedback: feedback,
		waste:    waste,
		renderer: renderer,
		logger:   logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Page handles GET / requests. ?view= picks the visible panel and ?day= the
// day shown by the vote panel.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	opts := render.Options{VoteDay: voteDay(r.URL.Query().Get("day"))}
	h.page(w, http.StatusOK, r.URL.Query().Get("view"), opts)
}

// Panel handles GET /panels/{panel} requests with a single HTML fragment.
func (h *DashboardHandler) Panel(w http.ResponseWriter, r *http.Request) {
	opts := render.Options{VoteDay: voteDay(r.URL.Query().Get("day"))}

	html, err := h.renderer.Panel(r.PathValue("panel"), opts)
	if err != nil {
		h.logger.Debug().Err(err).Str("panel", r.PathValue("panel")).Msg("panel not rendered")
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// VoteForm handles POST /forms/vote.
func (h *DashboardHandler) VoteForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := model.VoteRequest{Day: model.DayKey(r.PostForm.Get("day")), DishID: r.PostForm.Get("dishId")}
	result, err := h.feedback.CastVote(&req)
	if err != nil {
		status, _, message := classify(err)
		http.Error(w, message, status)
		return
	}

	h.page(w, http.StatusOK, model.PanelVote, render.Options{VoteDay: result.Day})
}

// AccuracyForm handles POST /forms/accuracy. Each answered dish arrives as
// an acc-<dishId> field.
func (h *DashboardHandler) AccuracyForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := model.AccuracyRequest{Responses: map[string]model.AccuracyResponse{}}
	for key := range r.PostForm {
		if dishID, ok := strings.CutPrefix(key, accuracyFieldPrefix); ok {
			req.Responses[dishID] = model.AccuracyResponse(r.PostForm.Get(key))
		}
	}

	status := http.StatusOK
	var message string
	result, err := h.feedback.SubmitAccuracy(&req)
	if err != nil {
		status, _, message = classify(err)
	} else {
		message = result.Message
	}

	h.page(w, status, model.PanelAccuracy, render.Options{
		Messages: map[string]string{model.PanelAccuracy: message},
	})
}

// WasteForm handles POST /forms/waste. Blank numeric fields count as zero.
func (h *DashboardHandler) WasteForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := model.WasteLogRequest{
		DishID: r.PostForm.Get("dishId"),
		Meal:   r.PostForm.Get("meal"),
	}
	fields := []struct {
		name string
		dst  *int
	}{
		{"prepared", &req.Prepared},
		{"served", &req.Served},
		{"wasted", &req.Wasted},
	}
	for _, f := range fields {
		n, err := formInt(r.PostForm.Get(f.name))
		if err != nil {
			http.Error(w, f.name+" must be a whole number", http.StatusBadRequest)
			return
		}
		*f.dst = n
	}

	opts := render.Options{Messages: map[string]string{}}
	status := http.StatusOK
	result, err := h.waste.LogWaste(&req)
	if err != nil {
		status, _, opts.Messages[model.PanelWaste] = classify(err)
		opts.WasteDraft = render.WasteDraft{
			DishID:   req.DishID,
			Meal:     req.Meal,
			Prepared: r.PostForm.Get("prepared"),
			Served:   r.PostForm.Get("served"),
			Wasted:   r.PostForm.Get("wasted"),
		}
	} else {
		opts.Messages[model.PanelWaste] = result.Message
	}

	h.page(w, status, model.PanelWaste, opts)
}

func (h *DashboardHandler) page(w http.ResponseWriter, status int, view string, opts render.Options) {
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, render.NewViews(view), opts); err != nil {
		h.logger.Error().Err(err).Str("view", view).Msg("failed to render dashboard")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// voteDay parses the ?day= selector; anything else means today.
func voteDay(s string) model.DayKey {
	day, err := model.ParseDayKey(s)
	if err != nil {
		return ""
	}
	return day
}

func formInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
