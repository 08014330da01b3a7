// storecheck probes the persistence the timer depends on: Redis
// reachability, the stored history, and (when configured) the
// Postgres archive.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gbyrne/gaa-ref-timer/internal/adapter/reportpresenter"
	"github.com/gbyrne/gaa-ref-timer/internal/archive"
	"github.com/gbyrne/gaa-ref-timer/internal/history"
	"github.com/gbyrne/gaa-ref-timer/internal/msgcat"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	databaseURL := os.Getenv("DATABASE_URL")

	if redisURL == "" {
		log.Fatal("REDIS_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	kv, err := history.DialRedis(ctx, redisURL)
	if err != nil {
		log.Fatalf("redis error: %v", err)
	}
	defer kv.Close()
	log.Println("redis ok")

	cat, err := msgcat.New("")
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	records := history.NewStore(kv).Load(ctx)
	log.Printf("history: %d record(s) under %q", len(records), history.StorageKey)
	fmt.Println(reportpresenter.NewFormatter(cat).HistoryList(records))

	if databaseURL == "" {
		log.Println("DATABASE_URL not set; skipping archive check")
		return
	}
	repo, err := archive.NewRepository(databaseURL)
	if err != nil {
		log.Fatalf("archive error: %v", err)
	}
	defer repo.Close()
	if err := repo.Ping(ctx); err != nil {
		log.Fatalf("archive ping error: %v", err)
	}
	reports, err := repo.RecentReports(ctx, 3)
	if err != nil {
		log.Fatalf("archive query error: %v", err)
	}
	log.Printf("archive ok, %d recent report(s)", len(reports))
}
