package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"percent": func(f float64) string {
		return strconv.FormatFloat(f, 'f', 1, 64)
	},
}

// Options carries per-request render inputs.
type Options struct {
	// VoteDay selects the day shown in the vote panel; empty means today.
	VoteDay model.DayKey
	// Messages holds inline feedback keyed by panel id.
	Messages map[string]string
	// WasteDraft refills the waste form after a rejected submission.
	WasteDraft WasteDraft
}

// WasteDraft is the waste form as the staff member typed it.
type WasteDraft struct {
	DishID   string
	Meal     string
	Prepared string
	Served   string
	Wasted   string
}

// Renderer projects the store and its aggregates into HTML panels. Every
// call rebuilds the panel from scratch.
type Renderer struct {
	tmpl   *template.Template
	stats  service.AggregationService
	charts *ChartBoard
	now    model.Clock
	logger zerolog.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(stats service.AggregationService, charts *ChartBoard, now model.Clock, logger zerolog.Logger) (*Renderer, error) {
	tmpl, err := template.New("dashboard").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if now == nil {
		now = time.Now
	}

	return &Renderer{
		tmpl:   tmpl,
		stats:  stats,
		charts: charts,
		now:    now,
		logger: logger.With().Str("component", "renderer").Logger(),
	}, nil
}

// Panel renders one panel or chart fragment by id.
func (r *Renderer) Panel(id string, opts Options) (template.HTML, error) {
	var data any
	switch id {
	case model.PanelToday:
		data = struct {
			Menu        []model.MenuItem
			LastUpdated string
		}{r.stats.TodayMenu(), r.now().Format("15:04")}

	case model.PanelVote:
		day := opts.VoteDay
		if day == "" {
			day = r.stats.CurrentDay()
		}
		data = struct {
			Days  []model.DayKey
			Board model.VoteBoard
		}{model.DayKeys(), r.stats.VoteBoard(day)}

	case model.PanelAccuracy:
		data = struct {
			Menu    []model.MenuItem
			Message string
		}{r.stats.TodayMenu(), opts.Messages[id]}

	case model.PanelWaste:
		data = struct {
			Dishes  []model.Dish
			Meals   []string
			Message string
			Draft   WasteDraft
		}{r.stats.Dishes(), model.Meals, opts.Messages[id], opts.WasteDraft}

	case model.PanelStats:
		wasteChart, err := r.Panel(model.PanelWasteChart, opts)
		if err != nil {
			return "", err
		}
		votesChart, err := r.Panel(model.PanelVotesChart, opts)
		if err != nil {
			return "", err
		}
		data = struct {
			Day        model.DayKey
			Totals     model.Totals
			WasteChart template.HTML
			VotesChart template.HTML
		}{r.stats.CurrentDay(), r.stats.TodayTotals(), wasteChart, votesChart}

	case model.PanelWasteChart:
		id, data = "chart", r.charts.Rebuild(ChartWasteByDish, r.stats.WastedPerDish())

	case model.PanelVotesChart:
		id, data = "chart", r.charts.Rebuild(ChartVotesByDish, r.stats.VotesPerDish())

	default:
		return "", fmt.Errorf("unknown panel %q", id)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, id, data); err != nil {
		r.logger.Error().Err(err).Str("panel", id).Msg("failed to render panel")
		return "", fmt.Errorf("failed to render panel %s: %w", id, err)
	}
	return template.HTML(buf.String()), nil
}

// Refresh renders each listed panel and returns the fragments keyed by id.
func (r *Renderer) Refresh(ids []string, opts Options) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		html, err := r.Panel(id, opts)
		if err != nil {
			return nil, err
		}
		out[id] = string(html)
	}
	return out, nil
}

// Page writes the whole dashboard with views.Active() visible.
func (r *Renderer) Page(w io.Writer, views Views, opts Options) error {
	type section struct {
		ID     string
		Active bool
		HTML   template.HTML
	}

	sections := make([]section, 0, len(model.Views))
	for _, item := range views.Items() {
		html, err := r.Panel(item.ID, opts)
		if err != nil {
			return err
		}
		sections = append(sections, section{ID: item.ID, Active: item.Active, HTML: html})
	}

	data := struct {
		Views  []ViewItem
		Panels []section
	}{views.Items(), sections}

	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		r.logger.Error().Err(err).Msg("failed to render page")
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Chart returns the current instance of a chart.
func (r *Renderer) Chart(name string) (*Chart, bool) {
	return r.charts.Get(name)
}

// RebuildCharts discards both charts and builds them from current data.
func (r *Renderer) RebuildCharts() map[string]*Chart {
	return map[string]*Chart{
		ChartWasteByDish: r.charts.Rebuild(ChartWasteByDish, r.stats.WastedPerDish()),
		ChartVotesByDish: r.charts.Rebuild(ChartVotesByDish, r.stats.VotesPerDish()),
	}
}
