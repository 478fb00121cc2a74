package model

import (
	"time"

	"github.com/google/uuid"
)

// Meals offered by the waste form.
var Meals = []string{"breakfast", "lunch", "dinner"}

// WasteLogEntry is one row of the append-only waste log.
type WasteLogEntry struct {
	ID       uuid.UUID `json:"id"`
	Date     DayKey    `json:"date"`
	Meal     string    `json:"meal"`
	DishID   string    `json:"dishId"`
	Prepared int       `json:"prepared"`
	Served   int       `json:"served"`
	Wasted   int       `json:"wasted"`
	LoggedAt time.Time `json:"loggedAt"`
}

// Balanced reports whether the entry satisfies prepared >= served + wasted.
// A served + wasted sum that overflows int is never balanced.
func (e WasteLogEntry) Balanced() bool {
	sum := e.Served + e.Wasted
	if (e.Wasted > 0 && sum < e.Served) || (e.Wasted < 0 && sum > e.Served) {
		return false
	}
	return e.Prepared >= sum
}

// WasteLogRequest is the staff waste form payload.
type WasteLogRequest struct {
	DishID   string `json:"dishId"`
	Meal     string `json:"meal"`
	Prepared int    `json:"prepared"`
	Served   int    `json:"served"`
	Wasted   int    `json:"wasted"`
}

// WasteLogResult is returned after a waste row was appended.
type WasteLogResult struct {
	Entry   WasteLogEntry `json:"entry"`
	Message string        `json:"message"`
	Refresh []string      `json:"-"`
}

// Totals sums the waste log columns.
type Totals struct {
	Prepared int `json:"prepared"`
	Served   int `json:"served"`
	Wasted   int `json:"wasted"`
}

// Series is a labelled numeric series consumed by the charts.
type Series struct {
	Label  string   `json:"label"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}
