package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gbyrne/gaa-ref-timer/internal/archive"
	"github.com/gbyrne/gaa-ref-timer/internal/history"
	"github.com/gbyrne/gaa-ref-timer/internal/msgcat"
)

// DefaultTTL is how long an idle session is kept before it is swept.
const DefaultTTL = time.Hour

// Manager hands out sessions by opaque id. Unknown or empty ids get a
// fresh session; idle sessions expire after the TTL. All sessions
// share one history store and one persistence namespace.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	loc   *time.Location
	clock func() time.Time
	store *history.Store
	cat   *msgcat.Catalog
	repo  *archive.Repository
	ttl   time.Duration
}

func NewManager(store *history.Store, cat *msgcat.Catalog, loc *time.Location) *Manager {
	if loc == nil {
		loc = time.Local
	}
	return &Manager{
		sessions: make(map[string]*Session),
		loc:      loc,
		clock:    time.Now,
		store:    store,
		cat:      cat,
		ttl:      DefaultTTL,
	}
}

// WithTTL overrides the idle expiry. Non-positive values keep the
// default.
func (m *Manager) WithTTL(d time.Duration) *Manager {
	if d > 0 {
		m.ttl = d
	}
	return m
}

// WithClock injects a deterministic clock for tests.
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	if clock != nil {
		m.clock = clock
	}
	return m
}

// AttachArchive wires an optional database archive for saved
// records. Existing sessions are not retrofitted; attach before
// serving.
func (m *Manager) AttachArchive(r *archive.Repository) {
	if m != nil {
		m.repo = r
	}
}

// Session returns the session for id, creating one under a fresh
// uuid when id is empty or unknown. The returned id is what the
// caller should carry on subsequent requests.
func (m *Manager) Session(id string) *Session {
	id = strings.TrimSpace(id)
	now := m.clock()

	if id != "" {
		m.mu.RLock()
		s := m.sessions[id]
		m.mu.RUnlock()
		if s != nil {
			s.touch(now)
			return s
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(now)
	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := m.sessions[id]; ok {
		s.touch(now)
		return s
	}
	s := newSession(id, m.loc, m.clock, m.store, m.cat, m.repo)
	m.sessions[id] = s
	return s
}

// Len reports the live session count.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, s := range m.sessions {
		if now.Sub(s.seen()) > m.ttl {
			delete(m.sessions, id)
		}
	}
}
