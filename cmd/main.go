package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hivewatch/internal/alerts"
	"hivewatch/internal/api"
	"hivewatch/internal/cache"
	"hivewatch/internal/config"
	"hivewatch/internal/db"
	"hivewatch/internal/kafka"
	"hivewatch/internal/logging"
	"hivewatch/internal/monitor"
	"hivewatch/internal/providers"
	"hivewatch/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Infof("Starting hivewatch service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.New(cfg.DB.DSN)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	localCache, err := cache.Open(cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		logger.Fatalf("Failed to open local cache: %v", err)
	}
	defer localCache.Close()

	hub := ws.NewHub(logger)

	alertOpts := []alerts.Option{alerts.WithChannel(ws.NewNotificationChannel(hub))}
	if cfg.Telegram.BotToken != "" {
		telegram, err := providers.NewTelegramChannel(cfg, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize Telegram channel: %v", err)
		}
		alertOpts = append(alertOpts, alerts.WithChannel(telegram))
		logger.Infof("Telegram escalation enabled for chat %d", cfg.Telegram.ChatID)
	}

	manager := alerts.NewManager(database, logger, alertOpts...)
	go manager.RunJanitor(ctx, time.Hour)

	monitorOpts := monitor.Options{PollInterval: cfg.Monitor.PollInterval}
	if cfg.Monitor.SeedMode == config.SeedCached {
		monitorOpts.SeedStore = cache.NewSeedStore(localCache, logger)
		logger.Infof("Staleness seeding from local cache enabled")
	}
	registry := monitor.NewRegistry(manager, database, hub, logger, monitorOpts)

	var wg sync.WaitGroup
	consumer := kafka.NewConsumer(cfg, registry, logger)
	consumer.Start(ctx, &wg)

	router := api.NewRouter(database, hub, logger, cfg)
	server := &http.Server{
		Addr:    cfg.API.Port,
		Handler: router,
	}
	go func() {
		logger.Infof("API server listening on %s", cfg.API.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("API server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutdown signal received")

	cancel()
	consumer.Close()
	registry.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("API server shutdown failed: %v", err)
	}

	wg.Wait()
	logger.Infof("Service stopped")
}
