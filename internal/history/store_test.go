package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/gbyrne/gaa-ref-timer/internal/domain"
)

func newRedisStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	kv, err := DialRedis(context.Background(), fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("DialRedis: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv), mr
}

func record(id int64) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:        id,
		StartTime: "2024-05-14T09:00:00.000Z",
		EndTime:   "2024-05-14T11:30:00.000Z",
		Duration:  domain.Duration{Hours: 2, Minutes: 30},
		Date:      "2024-05-14",
	}
}

func TestLoadEmptyWhenAbsent(t *testing.T) {
	s, _ := newRedisStore(t)
	if got := s.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty history, got %d records", len(got))
	}
}

func TestLoadEmptyWhenMalformed(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Set(StorageKey, "{not json")
	if got := s.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty history on malformed blob, got %d records", len(got))
	}
}

func TestPrependKeepsNewestFirstAndCap(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	var last []domain.HistoryRecord
	for i := int64(1); i <= 11; i++ {
		var err error
		last, err = s.Prepend(ctx, record(i))
		if err != nil {
			t.Fatalf("Prepend #%d: %v", i, err)
		}
	}
	if len(last) != DefaultLimit {
		t.Fatalf("expected %d records after 11 prepends, got %d", DefaultLimit, len(last))
	}
	if last[0].ID != 11 {
		t.Fatalf("head id = %d, want 11", last[0].ID)
	}
	for _, r := range last {
		if r.ID == 1 {
			t.Fatalf("oldest record should have been evicted")
		}
	}
	// and the persisted copy agrees
	reloaded := s.Load(ctx)
	if len(reloaded) != DefaultLimit || reloaded[0].ID != 11 {
		t.Fatalf("reloaded history mismatch: len=%d head=%d", len(reloaded), reloaded[0].ID)
	}
}

func TestClearRemovesKeyEntirely(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	if _, err := s.Prepend(ctx, record(1)); err != nil {
		t.Fatalf("Prepend: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if mr.Exists(StorageKey) {
		t.Fatalf("key should be deleted, not emptied")
	}
	if got := s.Load(ctx); len(got) != 0 {
		t.Fatalf("expected empty history after Clear, got %d", len(got))
	}
}

func TestRoundTripPreservesFields(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()
	want := record(42)
	if _, err := s.Prepend(ctx, want); err != nil {
		t.Fatalf("Prepend: %v", err)
	}
	got := s.Load(ctx)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, want)
	}
}

func TestWriteFailurePropagates(t *testing.T) {
	kv := NewMemKV()
	kv.FailWrites = errors.New("quota exceeded")
	s := NewStore(kv)
	if _, err := s.Prepend(context.Background(), record(1)); err == nil {
		t.Fatalf("expected write failure from Prepend")
	}
	if err := s.Clear(context.Background()); err == nil {
		t.Fatalf("expected write failure from Clear")
	}
}

func TestWithLimit(t *testing.T) {
	s := NewStore(NewMemKV()).WithLimit(2)
	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		if _, err := s.Prepend(ctx, record(i)); err != nil {
			t.Fatalf("Prepend: %v", err)
		}
	}
	got := s.Load(ctx)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("unexpected trimmed history: %+v", got)
	}
}
