// Package session holds the referee-facing calculator state: one
// current calculation per session, the report text built from it, and
// the save path into the shared history.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gbyrne/gaa-ref-timer/internal/archive"
	"github.com/gbyrne/gaa-ref-timer/internal/domain"
	"github.com/gbyrne/gaa-ref-timer/internal/format"
	"github.com/gbyrne/gaa-ref-timer/internal/history"
	"github.com/gbyrne/gaa-ref-timer/internal/msgcat"
	"github.com/gbyrne/gaa-ref-timer/internal/obslog"
	"github.com/gbyrne/gaa-ref-timer/internal/timemath"
	"github.com/gbyrne/gaa-ref-timer/pkg/matchdto"
)

// Session is one referee's calculator. All operations are
// synchronous and cheap; the mutex only guards the current
// calculation against interleaved HTTP requests on the same id.
type Session struct {
	mu       sync.Mutex
	id       string
	loc      *time.Location
	clock    func() time.Time
	store    *history.Store
	cat      *msgcat.Catalog
	repo     *archive.Repository // nil unless an archive is attached
	current  *domain.Calculation
	lastSeen time.Time
}

func newSession(id string, loc *time.Location, clock func() time.Time, store *history.Store, cat *msgcat.Catalog, repo *archive.Repository) *Session {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Session{
		id:       id,
		loc:      loc,
		clock:    clock,
		store:    store,
		cat:      cat,
		repo:     repo,
		lastSeen: clock(),
	}
}

func (s *Session) ID() string { return s.id }

// Calculate parses the raw inputs, computes the end time on today's
// date and stores the result as the current calculation, overwriting
// any prior one. An empty start time yields ErrNoStartTime and a
// view with Show=false; the prior calculation is left untouched.
func (s *Session) Calculate(req matchdto.CalculateRequest) (*matchdto.CalculationView, error) {
	startHour, startMinute, ok := timemath.ParseClock(req.StartTime)
	if !ok {
		return &matchdto.CalculationView{Show: false}, ErrNoStartTime
	}
	d := timemath.ParseDuration(req.Hours, req.Minutes, req.Seconds)

	s.mu.Lock()
	defer s.mu.Unlock()
	ref := s.clock().In(s.loc)
	start, end := timemath.ComputeEndTime(startHour, startMinute, d, ref)
	s.current = &domain.Calculation{StartTime: start, EndTime: end, Duration: d}
	s.lastSeen = s.clock()
	return s.view(*s.current), nil
}

func (s *Session) view(c domain.Calculation) *matchdto.CalculationView {
	return &matchdto.CalculationView{
		Show:      true,
		StartTime: format.ShortTime(c.StartTime),
		EndTime:   format.ShortTime(c.EndTime),
		Duration:  format.Duration(c.Duration.Hours, c.Duration.Minutes, c.Duration.Seconds),
		Date:      format.LongDate(c.StartTime),
	}
}

// Current returns the current calculation, if any.
func (s *Session) Current() (domain.Calculation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Calculation{}, false
	}
	return *s.current, true
}

// CurrentView renders the current calculation for display.
func (s *Session) CurrentView() (*matchdto.CalculationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoCalculation
	}
	return s.view(*s.current), nil
}

// Report builds the shareable match report text. The line labels are
// a fixed interchange format; anyone parsing saved reports depends
// on them.
func (s *Session) Report() (string, error) {
	s.mu.Lock()
	c := s.current
	s.mu.Unlock()
	if c == nil {
		return "", ErrNoCalculation
	}
	text, err := s.cat.Render("report.match", map[string]string{
		"Date":     format.LongDate(c.StartTime),
		"Start":    format.ShortTime(c.StartTime),
		"End":      format.ShortTime(c.EndTime),
		"Duration": format.Duration(c.Duration.Hours, c.Duration.Minutes, c.Duration.Seconds),
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Save converts the current calculation into a history record and
// prepends it to the persisted history. When an archive repository
// is attached the record is mirrored there as well; archive failures
// are logged but never fail the save, the history stays the
// authoritative copy.
func (s *Session) Save(ctx context.Context) (domain.HistoryRecord, []domain.HistoryRecord, error) {
	s.mu.Lock()
	c := s.current
	s.mu.Unlock()
	if c == nil {
		return domain.HistoryRecord{}, nil, ErrNoCalculation
	}
	rec := c.Record(s.clock())
	records, err := s.store.Prepend(ctx, rec)
	if err != nil {
		return domain.HistoryRecord{}, nil, err
	}
	if s.repo != nil {
		report, rerr := s.Report()
		if rerr != nil {
			report = ""
		}
		if aerr := s.repo.SaveRecord(ctx, rec, report); aerr != nil {
			obslog.L().Warn("archive save failed", zap.Int64("id", rec.ID), zap.Error(aerr))
		}
	}
	return rec, records, nil
}

// History returns the persisted history, newest first.
func (s *Session) History(ctx context.Context) []domain.HistoryRecord {
	return s.store.Load(ctx)
}

// ClearHistory removes the persisted history entirely.
func (s *Session) ClearHistory(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
