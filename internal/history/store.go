// Package history keeps the bounded, most-recent-first list of saved
// calculations. The durable copy lives in an injected key-value
// collaborator under a single fixed key; in-memory state is never
// authoritative across restarts.
package history

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/gbyrne/gaa-ref-timer/internal/domain"
	"github.com/gbyrne/gaa-ref-timer/internal/obslog"
)

// StorageKey is the single key the whole history lives under. It
// matches the companion web app's localStorage key so migrated
// histories keep working.
const StorageKey = "gaa-referee-calculations"

// DefaultLimit caps the history at the ten most recent records.
const DefaultLimit = 10

// ErrNotFound is returned by a KV when the key is absent.
var ErrNotFound = errors.New("history: key not found")

// KV is the persistence collaborator behind the store. A value is an
// opaque string; Get returns ErrNotFound when the key was never set
// or has been removed.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Store manages the persisted history. Single writer, single reader;
// no locking is layered on top of what the KV itself provides.
type Store struct {
	kv    KV
	key   string
	limit int
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, key: StorageKey, limit: DefaultLimit}
}

// WithLimit overrides the record cap. Values below 1 keep the default.
func (s *Store) WithLimit(n int) *Store {
	if n >= 1 {
		s.limit = n
	}
	return s
}

// Load reads the persisted history. A missing key, a malformed blob
// or a KV read error all degrade to an empty history; the condition
// is logged and never surfaced to the caller.
func (s *Store) Load(ctx context.Context) []domain.HistoryRecord {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return []domain.HistoryRecord{}
	}
	if err != nil {
		obslog.L().Warn("history read failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return []domain.HistoryRecord{}
	}
	var records []domain.HistoryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		obslog.L().Warn("stored history is malformed, starting empty", zap.String("key", s.key), zap.Error(err))
		return []domain.HistoryRecord{}
	}
	return records
}

// Prepend inserts rec at the head, truncates to the cap and persists
// the result. The returned slice is the new history, newest first.
// Unlike reads, write failures propagate to the caller.
func (s *Store) Prepend(ctx context.Context, rec domain.HistoryRecord) ([]domain.HistoryRecord, error) {
	records := append([]domain.HistoryRecord{rec}, s.Load(ctx)...)
	if len(records) > s.limit {
		records = records[:s.limit]
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return nil, err
	}
	return records, nil
}

// Clear removes the persisted key entirely rather than writing an
// empty array; a subsequent Load yields an empty history.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Del(ctx, s.key)
}
