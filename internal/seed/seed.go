package seed

import (
	"context"
	"fmt"

	"cafeteria-dash/internal/model"
)

// Seed is the startup data of the dashboard store.
type Seed struct {
	Dishes       []model.Dish                  `json:"dishes"`
	Menu         model.WeeklyMenu              `json:"menu"`
	Availability map[string]model.Availability `json:"availability"`
	Votes        model.VoteTally               `json:"votes"`
	WasteLog     []model.WasteLogEntry         `json:"wasteLog"`
}

// Loader defines the interface for loading seed documents.
type Loader interface {
	// Load reads the seed identified by source and returns it validated.
	Load(ctx context.Context, source string) (*Seed, error)
}

// Validate checks that every dish id referenced by the menu, availability,
// votes and waste log exists in the catalog, and that seeded waste rows
// satisfy prepared >= served + wasted.
func (s *Seed) Validate() error {
	if len(s.Dishes) == 0 {
		return fmt.Errorf("seed has no dishes")
	}

	known := make(map[string]struct{}, len(s.Dishes))
	for i, d := range s.Dishes {
		if d.ID == "" {
			return fmt.Errorf("dish %d: id is required", i)
		}
		if _, dup := known[d.ID]; dup {
			return fmt.Errorf("dish %q: duplicate id", d.ID)
		}
		known[d.ID] = struct{}{}
	}

	check := func(where, id string) error {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%s: unknown dish %q", where, id)
		}
		return nil
	}

	for day, ids := range s.Menu {
		if !day.Valid() {
			return fmt.Errorf("menu: unknown day key %q", day)
		}
		for _, id := range ids {
			if err := check("menu "+string(day), id); err != nil {
				return err
			}
		}
	}

	for id, status := range s.Availability {
		if err := check("availability", id); err != nil {
			return err
		}
		if !status.Valid() {
			return fmt.Errorf("availability %q: unknown status %q", id, status)
		}
	}

	for day, counts := range s.Votes {
		if !day.Valid() {
			return fmt.Errorf("votes: unknown day key %q", day)
		}
		for id, n := range counts {
			if err := check("votes "+string(day), id); err != nil {
				return err
			}
			if n < 0 {
				return fmt.Errorf("votes %s/%s: negative count", day, id)
			}
		}
	}

	for i, e := range s.WasteLog {
		if err := check(fmt.Sprintf("waste log %d", i), e.DishID); err != nil {
			return err
		}
		if !e.Date.Valid() {
			return fmt.Errorf("waste log %d: unknown day key %q", i, e.Date)
		}
		if !e.Balanced() {
			return fmt.Errorf("waste log %d: prepared %d is less than served %d + wasted %d",
				i, e.Prepared, e.Served, e.Wasted)
		}
	}

	return nil
}
