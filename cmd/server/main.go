package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tutorlink/internal/config"
	"tutorlink/internal/infrastructure/logger"
	"tutorlink/internal/infrastructure/mysql"
	"tutorlink/internal/order"
	"tutorlink/internal/server"
	"tutorlink/internal/tags"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	var db *sql.DB
	if cfg.Tags.Source == config.TagsSourceMySQL {
		db, err = mysql.NewConnection(cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")
	}

	tagSource, err := tags.NewSource(cfg.Tags, db)
	if err != nil {
		zapLogger.Fatal("configuring tags source", zap.Error(err))
	}
	vocabulary, tagsCtrl := tags.NewModule(tagSource, zapLogger)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Tags.Timeout)
	vocabulary.Load(loadCtx)
	cancelLoad()

	orderModule := order.NewModule(cfg, vocabulary, zapLogger)

	router := server.NewRouter(orderModule, tagsCtrl, cfg.CORS.AllowedOrigins, cfg.Server.RequestTimeout, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	ctx, stopDrafts := context.WithCancel(context.Background())
	reaperDone := make(chan struct{})
	go func() {
		orderModule.Store.Run(ctx, cfg.Draft.ReapInterval)
		close(reaperDone)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
	}

	stopDrafts()
	<-reaperDone

	zapLogger.Info("server stopped gracefully")
}
