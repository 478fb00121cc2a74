package service

import "cafeteria-dash/internal/model"

// AggregationService derives dashboard statistics from the store.
// All methods are pure reads and safe to call any number of times.
type AggregationService interface {
	// CurrentDay resolves the menu day of the clock's current time.
	CurrentDay() model.DayKey

	// Dishes returns the catalog in catalog order.
	Dishes() []model.Dish

	// MenuFor returns day's dishes joined with their availability.
	// Unknown days yield an empty menu.
	MenuFor(day model.DayKey) []model.MenuItem

	// TodayMenu is MenuFor(CurrentDay()).
	TodayMenu() []model.MenuItem

	// Accuracy returns the reality check counters recorded for day.
	Accuracy(day model.DayKey) map[string]model.AccuracyCount

	// TodayTotals sums prepared, served and wasted over today's waste rows.
	TodayTotals() model.Totals

	// WastedPerDish sums wasted portions per catalog dish, in catalog order.
	WastedPerDish() model.Series

	// VotesPerDish sums votes over every day per catalog dish, in catalog order.
	VotesPerDish() model.Series

	// MaxVotesForDay returns the highest vote count on day's menu, at least 1.
	MaxVotesForDay(day model.DayKey) int

	// VoteBoard returns the voting rows of day with their bar fill.
	VoteBoard(day model.DayKey) model.VoteBoard

	// AccuracyPercent returns round(100 * yes / total).
	AccuracyPercent(yes, total int) (int, error)
}

// FeedbackService records student votes and reality check responses.
type FeedbackService interface {
	// CastVote adds one vote for a dish on a day.
	CastVote(req *model.VoteRequest) (*model.VoteResult, error)

	// SubmitAccuracy records one batch of reality check responses for today.
	SubmitAccuracy(req *model.AccuracyRequest) (*model.AccuracyResult, error)
}

// WasteService records staff waste logs.
type WasteService interface {
	// LogWaste appends a waste row for today after checking the portions balance.
	LogWaste(req *model.WasteLogRequest) (*model.WasteLogResult, error)

	// List returns every waste row in insertion order.
	List() []model.WasteLogEntry
}

// Panels re-rendered after each mutation.
var (
	VoteRefresh     = []string{model.PanelVote, model.PanelVotesChart}
	AccuracyRefresh = []string{model.PanelAccuracy}
	WasteRefresh    = []string{model.PanelStats, model.PanelWasteChart, model.PanelVotesChart}
)
