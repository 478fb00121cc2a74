package store

import (
	"sync"
	"time"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/seed"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store owns all dashboard state. It is built once at startup and shared by
// pointer; every mutation runs to completion under the write lock.
type Store struct {
	mu sync.RWMutex

	dishes       []model.Dish
	dishIndex    map[string]int
	menu         model.WeeklyMenu
	availability map[string]model.Availability
	votes        model.VoteTally
	accuracy     model.AccuracyTally
	wasteLog     []model.WasteLogEntry

	now    model.Clock
	logger zerolog.Logger
}

// New builds a store from a validated seed. The seed is deep-copied.
func New(s *seed.Seed, now model.Clock, logger zerolog.Logger) *Store {
	if now == nil {
		now = time.Now
	}

	st := &Store{
		dishes:       append([]model.Dish(nil), s.Dishes...),
		dishIndex:    make(map[string]int, len(s.Dishes)),
		menu:         make(model.WeeklyMenu, len(s.Menu)),
		availability: make(map[string]model.Availability, len(s.Availability)),
		votes:        make(model.VoteTally, len(s.Votes)),
		accuracy:     model.AccuracyTally{},
		now:          now,
		logger:       logger.With().Str("component", "store").Logger(),
	}

	for i, d := range st.dishes {
		st.dishIndex[d.ID] = i
	}
	for day, ids := range s.Menu {
		st.menu[day] = append([]string(nil), ids...)
	}
	for id, a := range s.Availability {
		st.availability[id] = a
	}
	for day, counts := range s.Votes {
		m := make(map[string]int, len(counts))
		for id, n := range counts {
			m[id] = n
		}
		st.votes[day] = m
	}
	for _, e := range s.WasteLog {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		st.wasteLog = append(st.wasteLog, e)
	}

	st.logger.Info().
		Int("dishes", len(st.dishes)).
		Int("waste_rows", len(st.wasteLog)).
		Msg("store initialised")

	return st
}

// Dishes returns the catalog in catalog order.
func (s *Store) Dishes() []model.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Dish(nil), s.dishes...)
}

// Dish looks up a dish by id.
func (s *Store) Dish(id string) (model.Dish, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.dishIndex[id]
	if !ok {
		return model.Dish{}, false
	}
	return s.dishes[i], true
}

// Menu returns the dish ids offered on day. Unknown days yield an empty menu.
func (s *Store) Menu(day model.DayKey) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.menu[day]...)
}

// Availability returns the status of a dish, defaulting to available.
func (s *Store) Availability(id string) model.Availability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.availability[id]; ok {
		return a
	}
	return model.Available
}

// Votes returns a copy of the vote counts of day.
func (s *Store) Votes(day model.DayKey) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.votes[day]))
	for id, n := range s.votes[day] {
		out[id] = n
	}
	return out
}

// AllVotes returns a copy of the full tally.
func (s *Store) AllVotes() model.VoteTally {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(model.VoteTally, len(s.votes))
	for day, counts := range s.votes {
		m := make(map[string]int, len(counts))
		for id, n := range counts {
			m[id] = n
		}
		out[day] = m
	}
	return out
}

// Accuracy returns a copy of the reality check counters of day.
func (s *Store) Accuracy(day model.DayKey) map[string]model.AccuracyCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.AccuracyCount, len(s.accuracy[day]))
	for id, c := range s.accuracy[day] {
		out[id] = c
	}
	return out
}

// WasteLog returns a copy of the waste log in insertion order.
func (s *Store) WasteLog() []model.WasteLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.WasteLogEntry(nil), s.wasteLog...)
}

// RecordVote adds one vote and returns the new count. It never fails.
func (s *Store) RecordVote(day model.DayKey, dishID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.votes[day] == nil {
		s.votes[day] = map[string]int{}
	}
	s.votes[day][dishID]++
	n := s.votes[day][dishID]

	s.logger.Debug().
		Str("day", string(day)).
		Str("dish_id", dishID).
		Int("count", n).
		Msg("vote recorded")

	return n
}

// RecordAccuracyResponse increments the yes or no counter of a dish.
func (s *Store) RecordAccuracyResponse(day model.DayKey, dishID string, response model.AccuracyResponse) model.AccuracyCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accuracy[day] == nil {
		s.accuracy[day] = map[string]model.AccuracyCount{}
	}
	c := s.accuracy[day][dishID]
	if response == model.ResponseYes {
		c.Yes++
	} else {
		c.No++
	}
	s.accuracy[day][dishID] = c

	return c
}

// AppendWasteLog appends entry when prepared >= served + wasted and returns
// the stored row. Otherwise it returns model.ErrWasteUnbalanced and the log
// is left untouched.
func (s *Store) AppendWasteLog(entry model.WasteLogEntry) (model.WasteLogEntry, error) {
	if !entry.Balanced() {
		s.logger.Debug().
			Str("dish_id", entry.DishID).
			Int("prepared", entry.Prepared).
			Int("served", entry.Served).
			Int("wasted", entry.Wasted).
			Msg("waste row rejected")
		return model.WasteLogEntry{}, model.ErrWasteUnbalanced
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.New()
	entry.LoggedAt = s.now()
	s.wasteLog = append(s.wasteLog, entry)

	return entry, nil
}
