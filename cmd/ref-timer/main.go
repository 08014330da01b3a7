package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gbyrne/gaa-ref-timer/internal/adapter/reportpresenter"
	"github.com/gbyrne/gaa-ref-timer/internal/archive"
	appcfg "github.com/gbyrne/gaa-ref-timer/internal/config"
	"github.com/gbyrne/gaa-ref-timer/internal/history"
	"github.com/gbyrne/gaa-ref-timer/internal/httpapi"
	"github.com/gbyrne/gaa-ref-timer/internal/msgcat"
	"github.com/gbyrne/gaa-ref-timer/internal/obslog"
	"github.com/gbyrne/gaa-ref-timer/internal/reportcard"
	"github.com/gbyrne/gaa-ref-timer/internal/session"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.Fatal("invalid TIMEZONE", zap.String("tz", cfg.Timezone), zap.Error(err))
		}
	}

	cat, err := msgcat.New(cfg.MsgOverrideDir)
	if err != nil {
		logger.Fatal("message catalog init failed", zap.Error(err))
	}

	dctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	kv, err := history.DialRedis(dctx, cfg.RedisURL)
	cancel()
	if err != nil {
		logger.Fatal("redis init failed", zap.Error(err))
	}
	store := history.NewStore(kv).WithLimit(cfg.HistoryLimit)

	mgr := session.NewManager(store, cat, loc).
		WithTTL(time.Duration(cfg.SessionTTLSec) * time.Second)

	var repo *archive.Repository
	if cfg.DatabaseURL != "" {
		repo, err = archive.NewRepository(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("archive init failed", zap.Error(err))
		}
		mgr.AttachArchive(repo)
		logger.Info("archive attached")
	}

	srv := httpapi.New(mgr, reportpresenter.NewFormatter(cat), reportcard.NewSVGCardRenderer(), cat)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil {
			logger.Fatal("http server stopped", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")

	_ = srv.Shutdown()
	_ = kv.Close()
	if repo != nil {
		_ = repo.Close()
	}
}
