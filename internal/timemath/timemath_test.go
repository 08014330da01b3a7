package timemath

import (
	"testing"
	"time"

	"github.com/gbyrne/gaa-ref-timer/internal/domain"
)

func TestComputeEndTimeExactOffset(t *testing.T) {
	ref := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		hour, minute int
		d            domain.Duration
	}{
		{9, 0, domain.Duration{Hours: 2, Minutes: 30}},
		{0, 0, domain.Duration{}},
		{23, 59, domain.Duration{Minutes: 1}},
		{13, 37, domain.Duration{Hours: 1, Minutes: 2, Seconds: 3}},
	}
	for _, tc := range cases {
		start, end := ComputeEndTime(tc.hour, tc.minute, tc.d, ref)
		wantMs := int64(tc.d.Hours)*3600000 + int64(tc.d.Minutes)*60000 + int64(tc.d.Seconds)*1000
		if got := end.Sub(start).Milliseconds(); got != wantMs {
			t.Fatalf("offset for %+v: got %dms, want %dms", tc.d, got, wantMs)
		}
		if start.Hour() != tc.hour%24 || start.Minute() != tc.minute {
			t.Fatalf("start %v does not carry %02d:%02d", start, tc.hour, tc.minute)
		}
		if start.Second() != 0 || start.Nanosecond() != 0 {
			t.Fatalf("start %v has sub-minute precision", start)
		}
	}
}

func TestComputeEndTimeRollsOverOutOfRangeHour(t *testing.T) {
	ref := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)
	start, _ := ComputeEndTime(25, 0, domain.Duration{}, ref)
	want := time.Date(2024, 5, 15, 1, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("hour 25 start = %v, want %v", start, want)
	}
}

func TestComputeEndTimeCrossesMidnight(t *testing.T) {
	ref := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)
	_, end := ComputeEndTime(23, 30, domain.Duration{Hours: 1}, ref)
	want := time.Date(2024, 5, 15, 0, 30, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Fatalf("end = %v, want %v", end, want)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in           string
		hour, minute int
		ok           bool
	}{
		{"09:00", 9, 0, true},
		{"14:07", 14, 7, true},
		{"25:99", 25, 99, true}, // no range check, rollover is the caller's business
		{"9", 9, 0, true},
		{"ab:cd", 0, 0, true},
		{"", 0, 0, false},
		{"   ", 0, 0, false},
	}
	for _, tc := range cases {
		h, m, ok := ParseClock(tc.in)
		if h != tc.hour || m != tc.minute || ok != tc.ok {
			t.Fatalf("ParseClock(%q) = (%d, %d, %v), want (%d, %d, %v)", tc.in, h, m, ok, tc.hour, tc.minute, tc.ok)
		}
	}
}

func TestParseFieldCoercion(t *testing.T) {
	cases := map[string]int{
		"":    0,
		"abc": 0,
		"-5":  0,
		"0":   0,
		"42":  42,
		" 7 ": 7,
	}
	for in, want := range cases {
		if got := ParseField(in); got != want {
			t.Fatalf("ParseField(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	d := ParseDuration("2", "30", "junk")
	want := domain.Duration{Hours: 2, Minutes: 30, Seconds: 0}
	if d != want {
		t.Fatalf("ParseDuration = %+v, want %+v", d, want)
	}
}
