package ticket

import "time"

// Ticket is a saved set of six numbers owned by a member.
type Ticket struct {
	ID        string    `json:"id"`
	MemberID  int64     `json:"memberId"`
	Numbers   []int     `json:"numbers"`
	Source    string    `json:"source"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveRequest is the payload for saving a ticket. Source names where the
// numbers came from, e.g. "birth", "fortune" or "quick_pick".
type SaveRequest struct {
	Numbers []int  `json:"numbers"`
	Source  string `json:"source"`
	Memo    string `json:"memo"`
}

// Draw is an official draw result.
type Draw struct {
	Round   int       `json:"round"`
	Numbers []int     `json:"numbers"`
	Bonus   int       `json:"bonus"`
	DrawnOn time.Time `json:"drawnOn"`
}

// CheckResult compares one ticket with a draw.
type CheckResult struct {
	Ticket       Ticket `json:"ticket"`
	Matched      []int  `json:"matched"`
	BonusMatched bool   `json:"bonusMatched"`
	// Rank is 1..5 for a winning ticket and 0 otherwise.
	Rank int `json:"rank"`
}

// CheckReport is the result of checking every ticket of a member.
type CheckReport struct {
	Draw    Draw          `json:"draw"`
	Results []CheckResult `json:"results"`
	Winners int           `json:"winners"`
}
