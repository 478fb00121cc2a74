package render

import "cafeteria-dash/internal/model"

var viewTitles = map[string]string{
	model.PanelToday:    "Today",
	model.PanelVote:     "Vote",
	model.PanelAccuracy: "Reality Check",
	model.PanelWaste:    "Log Waste",
	model.PanelStats:    "Stats",
}

// ViewItem is one navigation entry.
type ViewItem struct {
	ID     string
	Title  string
	Active bool
}

// Views is the view controller: exactly one panel is active at a time.
type Views struct {
	active string
}

// NewViews selects the requested panel, falling back to today's menu.
func NewViews(requested string) Views {
	v := Views{active: model.PanelToday}
	v.Show(requested)
	return v
}

// Show activates id if it names a navigable panel and reports whether it did.
func (v *Views) Show(id string) bool {
	if _, ok := viewTitles[id]; !ok {
		return false
	}
	v.active = id
	return true
}

// Active returns the id of the visible panel.
func (v Views) Active() string {
	return v.active
}

// Items lists the navigation entries in order.
func (v Views) Items() []ViewItem {
	items := make([]ViewItem, 0, len(model.Views))
	for _, id := range model.Views {
		items = append(items, ViewItem{ID: id, Title: viewTitles[id], Active: id == v.active})
	}
	return items
}
