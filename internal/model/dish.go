package model

// Dish is an entry of the static dish catalog.
type Dish struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Station string `json:"station"`
}

// WeeklyMenu lists the dish ids served on each day, in display order.
type WeeklyMenu map[DayKey][]string

// Availability is the stock status of a dish.
type Availability string

const (
	Available Availability = "available"
	Low       Availability = "low"
	SoldOut   Availability = "soldout"
)

// Valid reports whether a is a known status.
func (a Availability) Valid() bool {
	return a == Available || a == Low || a == SoldOut
}

// Label returns the human readable status.
func (a Availability) Label() string {
	switch a {
	case Low:
		return "Low stock"
	case SoldOut:
		return "Sold out"
	default:
		return "Available"
	}
}

// MenuItem is a dish on a day's menu joined with its availability.
type MenuItem struct {
	Dish
	Day          DayKey       `json:"day"`
	Availability Availability `json:"availability"`
	StatusLabel  string       `json:"statusLabel"`
}
