package service

import (
	"math"
	"time"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/store"

	"github.com/rs/zerolog"
)

// aggregationService implements AggregationService.
type aggregationService struct {
	store  *store.Store
	now    model.Clock
	logger zerolog.Logger
}

// NewAggregationService creates a new aggregation service.
// now is the only time input; nil means time.Now.
func NewAggregationService(st *store.Store, now model.Clock, logger zerolog.Logger) AggregationService {
	if now == nil {
		now = time.Now
	}
	return &aggregationService{
		store:  st,
		now:    now,
		logger: logger.With().Str("service", "aggregation").Logger(),
	}
}

func (s *aggregationService) CurrentDay() model.DayKey {
	return model.ResolveDayKey(s.now())
}

func (s *aggregationService) Dishes() []model.Dish {
	return s.store.Dishes()
}

func (s *aggregationService) TodayMenu() []model.MenuItem {
	return s.MenuFor(s.CurrentDay())
}

func (s *aggregationService) Accuracy(day model.DayKey) map[string]model.AccuracyCount {
	return s.store.Accuracy(day)
}

func (s *aggregationService) MenuFor(day model.DayKey) []model.MenuItem {
	ids := s.store.Menu(day)

	items := make([]model.MenuItem, 0, len(ids))
	for _, id := range ids {
		dish, ok := s.store.Dish(id)
		if !ok {
			continue
		}
		a := s.store.Availability(id)
		items = append(items, model.MenuItem{
			Dish:         dish,
			Day:          day,
			Availability: a,
			StatusLabel:  a.Label(),
		})
	}
	return items
}

func (s *aggregationService) TodayTotals() model.Totals {
	day := s.CurrentDay()

	var t model.Totals
	for _, e := range s.store.WasteLog() {
		if e.Date != day {
			continue
		}
		t.Prepared += e.Prepared
		t.Served += e.Served
		t.Wasted += e.Wasted
	}
	return t
}

func (s *aggregationService) WastedPerDish() model.Series {
	wasted := map[string]int{}
	for _, e := range s.store.WasteLog() {
		wasted[e.DishID] += e.Wasted
	}

	return s.perDish("Total wasted portions", wasted)
}

func (s *aggregationService) VotesPerDish() model.Series {
	votes := map[string]int{}
	for _, counts := range s.store.AllVotes() {
		for id, n := range counts {
			votes[id] += n
		}
	}

	return s.perDish("Total student votes", votes)
}

// perDish aligns sums with catalog order, filling missing dishes with 0.
func (s *aggregationService) perDish(label string, sums map[string]int) model.Series {
	dishes := s.store.Dishes()
	series := model.Series{
		Label:  label,
		Labels: make([]string, len(dishes)),
		Values: make([]int, len(dishes)),
	}
	for i, d := range dishes {
		series.Labels[i] = d.Name
		series.Values[i] = sums[d.ID]
	}
	return series
}

func (s *aggregationService) MaxVotesForDay(day model.DayKey) int {
	votes := s.store.Votes(day)

	highest := 1
	for _, id := range s.store.Menu(day) {
		highest = max(highest, votes[id])
	}
	return highest
}

func (s *aggregationService) VoteBoard(day model.DayKey) model.VoteBoard {
	votes := s.store.Votes(day)
	highest := s.MaxVotesForDay(day)

	board := model.VoteBoard{Day: day, MaxVotes: highest, Rows: []model.VoteRow{}}
	for _, id := range s.store.Menu(day) {
		dish, ok := s.store.Dish(id)
		if !ok {
			continue
		}
		n := votes[id]
		board.Rows = append(board.Rows, model.VoteRow{
			Dish:        dish,
			Count:       n,
			FillPercent: float64(n) / float64(highest) * 100,
		})
	}
	return board
}

func (s *aggregationService) AccuracyPercent(yes, total int) (int, error) {
	if total <= 0 {
		return 0, model.ErrNoResponses
	}
	return int(math.Round(100 * float64(yes) / float64(total))), nil
}
