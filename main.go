package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vr33ni-dev/mystic-cards-api/api"
	"github.com/vr33ni-dev/mystic-cards-api/db"
	"github.com/vr33ni-dev/mystic-cards-api/deck"
	"github.com/vr33ni-dev/mystic-cards-api/diag"
	"github.com/vr33ni-dev/mystic-cards-api/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if utils.IsLocal(cfg.AppEnv) {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// optional; the service runs fine without it
	capability, closeDB := db.Open(ctx, cfg.DBURL, logger)
	defer func() {
		if err := closeDB(); err != nil {
			logger.WithError(err).Warn("closing database")
		}
	}()

	cards := deck.Standard()
	h := &api.Handler{
		Deck: cards,
		Prober: diag.NewProber(capability,
			diag.WithTimeout(cfg.DiagTimeout),
			diag.WithLogger(logger)),
		Log: logger,
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewRouter(h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("graceful shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"env":      cfg.AppEnv,
		"addr":     server.Addr,
		"cards":    cards.Len(),
		"database": capability.State().String(),
	}).Info("Mystic Cards API listening")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("server stopped")
}
