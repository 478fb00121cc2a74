package model

// Panel ids of the dashboard.
const (
	PanelToday      = "today"
	PanelVote       = "vote"
	PanelAccuracy   = "accuracy"
	PanelWaste      = "waste"
	PanelStats      = "stats"
	PanelWasteChart = "waste-chart"
	PanelVotesChart = "votes-chart"
)

// Views lists the navigable panels in navigation order.
var Views = []string{PanelToday, PanelVote, PanelAccuracy, PanelWaste, PanelStats}
