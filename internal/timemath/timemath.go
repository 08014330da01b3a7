package timemath

import (
	"strconv"
	"strings"
	"time"

	"github.com/gbyrne/gaa-ref-timer/internal/domain"
)

// ComputeEndTime projects a bare time-of-day onto ref's calendar date
// and adds the elapsed duration. Out-of-range hour/minute values roll
// over into adjacent days via time.Date normalization; callers may
// rely on that for quick elapsed-day corrections.
func ComputeEndTime(startHour, startMinute int, d domain.Duration, ref time.Time) (start, end time.Time) {
	start = time.Date(ref.Year(), ref.Month(), ref.Day(), startHour, startMinute, 0, 0, ref.Location())
	end = start.Add(time.Duration(d.TotalSeconds()) * time.Second)
	return start, end
}

// ParseClock splits an "HH:MM" input into hour and minute. The input
// is unvalidated beyond the numeric split: each component falls back
// to 0 when absent or non-numeric, and no range check is applied.
// ok is false only when the value is empty, which signals that there
// is nothing to calculate.
func ParseClock(value string) (hour, minute int, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(value, ":", 2)
	hour, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return hour, minute, true
}

// ParseField coerces a raw numeric-ish elapsed field to a
// non-negative integer. Absent, non-numeric and negative inputs all
// come back as 0; parsing never fails.
func ParseField(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseDuration builds a Duration from the three raw elapsed fields.
func ParseDuration(rawHours, rawMinutes, rawSeconds string) domain.Duration {
	return domain.Duration{
		Hours:   ParseField(rawHours),
		Minutes: ParseField(rawMinutes),
		Seconds: ParseField(rawSeconds),
	}
}
