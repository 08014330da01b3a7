// Package archive mirrors saved calculations into Postgres for
// county-board record keeping. It is optional: without DATABASE_URL
// the history in the KV store is the only durable copy.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/gbyrne/gaa-ref-timer/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Ping verifies the connection is still alive.
func (r *Repository) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("archive not initialized")
	}
	return r.db.PingContext(ctx)
}

// SaveRecord inserts a saved calculation. The record id doubles as
// the conflict key: re-saving within the same millisecond is simply
// dropped, matching the at-most-one-record-per-id behavior of the
// history itself.
func (r *Repository) SaveRecord(ctx context.Context, rec domain.HistoryRecord, report string) error {
	if r == nil || r.db == nil {
		return nil
	}
	start, err := domain.ParseISOTime(rec.StartTime)
	if err != nil {
		return fmt.Errorf("parse start time: %w", err)
	}
	end, err := domain.ParseISOTime(rec.EndTime)
	if err != nil {
		return fmt.Errorf("parse end time: %w", err)
	}

	const q = `INSERT INTO match_reports (
	    id, started_at, ended_at,
	    elapsed_hours, elapsed_minutes, elapsed_seconds,
	    match_date, report_text
	  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	  ON CONFLICT (id) DO NOTHING`

	_, err = r.db.ExecContext(ctx, q,
		rec.ID, start, end,
		rec.Duration.Hours, rec.Duration.Minutes, rec.Duration.Seconds,
		rec.Date, report,
	)
	return err
}

// RecentReports returns archived report texts, newest first.
func (r *Repository) RecentReports(ctx context.Context, limit int) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("archive not initialized")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT report_text FROM match_reports ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}
