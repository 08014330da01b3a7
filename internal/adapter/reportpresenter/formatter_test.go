package reportpresenter

import (
	"strings"
	"testing"

	"github.com/gbyrne/gaa-ref-timer/internal/domain"
	"github.com/gbyrne/gaa-ref-timer/internal/msgcat"
	"github.com/gbyrne/gaa-ref-timer/pkg/matchdto"
)

func newFormatter(t *testing.T) *Formatter {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	return NewFormatter(cat)
}

func TestResultHiddenView(t *testing.T) {
	f := newFormatter(t)
	if got := f.Result(&matchdto.CalculationView{Show: false}); got != "" {
		t.Fatalf("hidden view should render nothing, got %q", got)
	}
	if got := f.Result(nil); got != "" {
		t.Fatalf("nil view should render nothing, got %q", got)
	}
}

func TestResultLines(t *testing.T) {
	f := newFormatter(t)
	got := f.Result(&matchdto.CalculationView{
		Show: true, StartTime: "09:00", EndTime: "11:30", Duration: "2:30:00",
	})
	want := "Match Started: 09:00\nMatch Ended: 11:30\nTotal Duration: 2:30:00"
	if got != want {
		t.Fatalf("result block:\n%q\nwant\n%q", got, want)
	}
}

func TestHistoryListEmpty(t *testing.T) {
	f := newFormatter(t)
	got := f.HistoryList(nil)
	if !strings.Contains(got, "No recent calculations") {
		t.Fatalf("empty listing missing empty-state line: %q", got)
	}
}

func TestHistoryListLines(t *testing.T) {
	f := newFormatter(t)
	records := []domain.HistoryRecord{
		{
			ID:        2,
			StartTime: "2024-05-14T09:00:00.000Z",
			EndTime:   "2024-05-14T11:30:00.000Z",
			Duration:  domain.Duration{Hours: 2, Minutes: 30},
			Date:      "2024-05-14",
		},
		{
			ID:        1,
			StartTime: "not-a-time",
			EndTime:   "also-not",
			Duration:  domain.Duration{Minutes: 5},
			Date:      "2024-05-13",
		},
	}
	got := f.HistoryList(records)
	if !strings.Contains(got, "(2:30:00)") {
		t.Fatalf("listing missing duration: %q", got)
	}
	// unparseable timestamps fall back to the raw stored strings
	if !strings.Contains(got, "not-a-time") || !strings.Contains(got, "2024-05-13") {
		t.Fatalf("bad record should still be listed: %q", got)
	}
}

func TestHistoryViewFormatsTimes(t *testing.T) {
	v := HistoryView(domain.HistoryRecord{
		ID:        7,
		StartTime: "2024-05-14T09:00:00.000Z",
		EndTime:   "2024-05-14T11:30:00.000Z",
		Duration:  domain.Duration{Hours: 2, Minutes: 30},
		Date:      "2024-05-14",
	})
	if v.Duration != "2:30:00" || v.ID != 7 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if len(v.StartTime) != 5 || v.StartTime[2] != ':' {
		t.Fatalf("start time not in HH:MM form: %q", v.StartTime)
	}
}
