package domain

import "time"

// Duration is the elapsed match time entered by the referee.
// Fields are kept exactly as entered; values outside 0-59 are not
// normalized (see format.Duration).
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// TotalSeconds returns the total elapsed seconds.
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Calculation is one computed end time. Exactly one "current"
// Calculation lives in a session at a time; it is not persisted
// until saved.
type Calculation struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  Duration
}

// HistoryRecord is the persisted form of a saved Calculation.
// The JSON layout matches the array stored under the
// gaa-referee-calculations key and must round-trip unchanged.
type HistoryRecord struct {
	ID        int64    `json:"id"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Duration  Duration `json:"duration"`
	Date      string   `json:"date"`
}

// ISOTime renders t in the JavaScript toISOString layout the web
// app's records use (UTC, millisecond precision, Z suffix).
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// ISODate is the UTC calendar date portion of ISOTime(t).
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseISOTime reads back a timestamp written by ISOTime. Records
// saved by older clients may lack fractional seconds, so both forms
// are accepted.
func ParseISOTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05.000Z07:00", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Record converts a Calculation into its persisted form. The id is
// the creation instant in milliseconds; duplicate ids within the
// same millisecond are tolerated because records are only ever
// rendered in insertion order, never looked up by id.
func (c Calculation) Record(now time.Time) HistoryRecord {
	return HistoryRecord{
		ID:        now.UnixMilli(),
		StartTime: ISOTime(c.StartTime),
		EndTime:   ISOTime(c.EndTime),
		Duration:  c.Duration,
		Date:      ISODate(c.StartTime),
	}
}
