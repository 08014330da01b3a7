package matchdto

// CalculationView is a calculation rendered for display. Show is
// false when there was nothing to calculate (no start time); the
// consumer is expected to hide the result area.
type CalculationView struct {
	Show      bool   `json:"show"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Date      string `json:"date,omitempty"`
}

// HistoryView is one saved record rendered for display.
type HistoryView struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
}
