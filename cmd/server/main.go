package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"grillhouse/internal/auth"
	"grillhouse/internal/broadcast"
	"grillhouse/internal/config"
	"grillhouse/internal/infrastructure/logger"
	"grillhouse/internal/infrastructure/sqlite"
	"grillhouse/internal/menu"
	"grillhouse/internal/order"
	"grillhouse/internal/server"
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

	db, err := sqlite.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("opening database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database ready", zap.String("path", cfg.Database.Path))

	hub := broadcast.NewHub(zapLogger)

	orderCtrl := order.NewModule(db, hub, zapLogger)
	menuCtrl := menu.NewModule(db, hub, zapLogger)
	authCtrl, authMW := auth.NewModule(db, cfg.Session.TTL, zapLogger)

	router := server.NewRouter(orderCtrl, menuCtrl, authCtrl, authMW, hub, cfg.Broadcast, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
