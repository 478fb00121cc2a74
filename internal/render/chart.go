package render

import (
	"encoding/json"
	"sync"
	"time"

	"cafeteria-dash/internal/model"
)

// Chart names, also used as canvas ids.
const (
	ChartWasteByDish = "wasteByDishChart"
	ChartVotesByDish = "votesByDishChart"
)

// Chart is one built chart instance. Instances are never updated in place.
type Chart struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	Series     model.Series `json:"series"`
	Generation uint64       `json:"generation"`
	BuiltAt    time.Time    `json:"builtAt"`
}

// Config is the payload handed to the browser charting library.
func (c *Chart) Config() string {
	data, err := json.Marshal(struct {
		Type   string   `json:"type"`
		Label  string   `json:"label"`
		Labels []string `json:"labels"`
		Values []int    `json:"values"`
	}{c.Kind, c.Series.Label, c.Series.Labels, c.Series.Values})
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ChartBoard owns the current chart instances.
type ChartBoard struct {
	mu     sync.Mutex
	charts map[string]*Chart
	gen    uint64
	now    model.Clock
}

// NewChartBoard creates an empty board.
func NewChartBoard(now model.Clock) *ChartBoard {
	if now == nil {
		now = time.Now
	}
	return &ChartBoard{charts: map[string]*Chart{}, now: now}
}

// Rebuild discards the chart called name, if any, and builds a new bar chart
// from series.
func (b *ChartBoard) Rebuild(name string, series model.Series) *Chart {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	c := &Chart{
		Name:       name,
		Kind:       "bar",
		Series:     series,
		Generation: b.gen,
		BuiltAt:    b.now(),
	}
	b.charts[name] = c
	return c
}

// Get returns the current instance of a chart.
func (b *ChartBoard) Get(name string) (*Chart, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.charts[name]
	return c, ok
}
