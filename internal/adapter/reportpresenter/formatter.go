// Package reportpresenter renders calculations and history listings
// into plain text blocks for API consumers and the storecheck tool.
package reportpresenter

import (
	"fmt"
	"strings"

	"github.com/gbyrne/gaa-ref-timer/internal/domain"
	"github.com/gbyrne/gaa-ref-timer/internal/format"
	"github.com/gbyrne/gaa-ref-timer/internal/msgcat"
	"github.com/gbyrne/gaa-ref-timer/pkg/matchdto"
)

// Formatter renders display text from the message catalog.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

// Result renders the three result lines for a visible calculation,
// or an empty string when there is nothing to show.
func (f *Formatter) Result(view *matchdto.CalculationView) string {
	if view == nil || !view.Show {
		return ""
	}
	var sb strings.Builder
	for _, item := range []struct{ key, value string }{
		{"result.start", view.StartTime},
		{"result.end", view.EndTime},
		{"result.duration", view.Duration},
	} {
		line, err := f.cat.Render(item.key, map[string]string{
			"Start": view.StartTime, "End": view.EndTime, "Duration": view.Duration,
		})
		if err != nil {
			line = item.value
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// HistoryView converts a persisted record into its display form.
// Records written by hand or by older clients may carry timestamps
// the parser rejects; those fall back to the raw stored string so a
// bad record never hides the rest of the listing.
func HistoryView(rec domain.HistoryRecord) matchdto.HistoryView {
	view := matchdto.HistoryView{
		ID:        rec.ID,
		Date:      rec.Date,
		StartTime: rec.StartTime,
		EndTime:   rec.EndTime,
		Duration:  format.Duration(rec.Duration.Hours, rec.Duration.Minutes, rec.Duration.Seconds),
	}
	if t, err := domain.ParseISOTime(rec.StartTime); err == nil {
		view.StartTime = format.ShortTime(t.Local())
		view.Date = format.LongDate(t.Local())
	}
	if t, err := domain.ParseISOTime(rec.EndTime); err == nil {
		view.EndTime = format.ShortTime(t.Local())
	}
	return view
}

// HistoryList renders the recent-calculations block, newest first.
func (f *Formatter) HistoryList(records []domain.HistoryRecord) string {
	var sb strings.Builder
	if header, err := f.cat.Render("history.header", nil); err == nil {
		sb.WriteString(header)
		sb.WriteByte('\n')
	}
	if len(records) == 0 {
		empty, err := f.cat.Render("history.empty", nil)
		if err != nil {
			empty = "No recent calculations"
		}
		sb.WriteString(empty)
		return sb.String()
	}
	for _, rec := range records {
		v := HistoryView(rec)
		line, err := f.cat.Render("history.line", map[string]string{
			"Start": v.StartTime, "End": v.EndTime, "Duration": v.Duration,
		})
		if err != nil {
			line = fmt.Sprintf("%s -> %s (%s)", v.StartTime, v.EndTime, v.Duration)
		}
		sb.WriteString(fmt.Sprintf("• %s  %s\n", v.Date, line))
	}
	return strings.TrimRight(sb.String(), "\n")
}
