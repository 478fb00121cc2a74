package model

// VoteTally maps day -> dish id -> vote count.
type VoteTally map[DayKey]map[string]int

// AccuracyResponse is a student's answer to "was this dish served?".
type AccuracyResponse string

const (
	ResponseYes AccuracyResponse = "yes"
	ResponseNo  AccuracyResponse = "no"
)

// Valid reports whether r is yes or no.
func (r AccuracyResponse) Valid() bool {
	return r == ResponseYes || r == ResponseNo
}

// AccuracyCount holds the yes/no counters of one dish on one day.
type AccuracyCount struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// AccuracyTally maps day -> dish id -> counters.
type AccuracyTally map[DayKey]map[string]AccuracyCount

// VoteRequest is the payload of a vote.
type VoteRequest struct {
	Day    DayKey `json:"day"`
	DishID string `json:"dishId"`
}

// VoteResult is returned after a vote was recorded.
type VoteResult struct {
	Day     DayKey   `json:"day"`
	DishID  string   `json:"dishId"`
	Count   int      `json:"count"`
	Refresh []string `json:"-"`
}

// VoteRow is one bar of the voting panel.
type VoteRow struct {
	Dish
	Count       int     `json:"count"`
	FillPercent float64 `json:"fillPercent"`
}

// VoteBoard is the voting panel of one day.
type VoteBoard struct {
	Day      DayKey    `json:"day"`
	MaxVotes int       `json:"maxVotes"`
	Rows     []VoteRow `json:"rows"`
}

// AccuracyRequest carries one response per answered dish.
type AccuracyRequest struct {
	Responses map[string]AccuracyResponse `json:"responses"`
}

// AccuracyResult is returned after a reality check was recorded.
type AccuracyResult struct {
	Day       DayKey   `json:"day"`
	Responses int      `json:"responses"`
	Yes       int      `json:"yes"`
	Percent   int      `json:"percent"`
	Message   string   `json:"message"`
	Refresh   []string `json:"-"`
}
