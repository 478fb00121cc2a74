package seed

import (
	"context"

	"cafeteria-dash/internal/model"
)

// Demo returns the built-in demo data.
func Demo() *Seed {
	return &Seed{
		Dishes: []model.Dish{
			{ID: "jerk-chicken", Name: "Jerk Chicken", Station: "Global Grill"},
			{ID: "veggie-pasta", Name: "Veggie Pasta", Station: "Pasta Bar"},
			{ID: "baked-fish", Name: "Baked Fish", Station: "Home Zone"},
			{ID: "tacos", Name: "Beef Tacos", Station: "Tex-Mex"},
			{ID: "stir-fry", Name: "Veggie Stir Fry", Station: "Action Station"},
			{ID: "pizza", Name: "Cheese Pizza", Station: "Pizza"},
		},
		Menu: model.WeeklyMenu{
			model.Mon: {"jerk-chicken", "veggie-pasta", "pizza"},
			model.Tue: {"baked-fish", "stir-fry", "pizza"},
			model.Wed: {"tacos", "veggie-pasta", "pizza"},
			model.Thu: {"jerk-chicken", "baked-fish", "stir-fry"},
			model.Fri: {"tacos", "veggie-pasta", "pizza"},
		},
		Availability: map[string]model.Availability{
			"jerk-chicken": model.Available,
			"veggie-pasta": model.Available,
			"baked-fish":   model.Low,
			"tacos":        model.Available,
			"stir-fry":     model.SoldOut,
			"pizza":        model.Available,
		},
		Votes: model.VoteTally{
			model.Mon: {"jerk-chicken": 12, "veggie-pasta": 8, "pizza": 15},
			model.Tue: {"baked-fish": 6, "stir-fry": 10, "pizza": 9},
			model.Wed: {"tacos": 18, "veggie-pasta": 5, "pizza": 13},
			model.Thu: {"jerk-chicken": 11, "baked-fish": 4, "stir-fry": 7},
			model.Fri: {"tacos": 20, "veggie-pasta": 9, "pizza": 14},
		},
		WasteLog: []model.WasteLogEntry{
			{Date: model.Mon, DishID: "jerk-chicken", Prepared: 60, Served: 48, Wasted: 12},
			{Date: model.Mon, DishID: "veggie-pasta", Prepared: 40, Served: 30, Wasted: 10},
			{Date: model.Tue, DishID: "baked-fish", Prepared: 50, Served: 36, Wasted: 14},
			{Date: model.Wed, DishID: "tacos", Prepared: 80, Served: 70, Wasted: 10},
		},
	}
}

type builtinLoader struct{}

// NewBuiltinLoader returns a loader that always yields the demo data.
func NewBuiltinLoader() Loader {
	return builtinLoader{}
}

func (builtinLoader) Load(_ context.Context, _ string) (*Seed, error) {
	return Demo(), nil
}
