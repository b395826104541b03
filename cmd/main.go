package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/m04kA/realty-intake-service/internal/api"
	"github.com/m04kA/realty-intake-service/internal/config"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	bookingsService "github.com/m04kA/realty-intake-service/internal/service/bookings"
	leadsService "github.com/m04kA/realty-intake-service/internal/service/leads"
	statsService "github.com/m04kA/realty-intake-service/internal/service/stats"
	"github.com/m04kA/realty-intake-service/pkg/logger"
	"github.com/m04kA/realty-intake-service/pkg/metrics"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to the TOML config file")
	pflag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting realty-intake-service...")
	log.Info("Configuration loaded from %s (storage=%s, strict_transitions=%t)",
		*configPath, cfg.Storage.Driver, cfg.Intake.StrictTransitions)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище записей
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, closeStore, err := openStore(startupCtx, cfg.Storage, metricsCollector, stopMetricsCh, log)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	// Инициализируем репозиторий и сервисы
	repo := intake.NewRepository(store, log)

	bookingSvc := bookingsService.NewService(repo, metricsCollector, log, cfg.Intake.StrictTransitions)
	leadSvc := leadsService.NewService(repo, metricsCollector, log, cfg.Intake.StrictTransitions)
	statsSvc := statsService.NewService(repo, log)

	// Настраиваем роутер
	router := api.NewRouter(api.Services{
		Bookings: bookingSvc,
		Leads:    leadSvc,
		Stats:    statsSvc,
	}, api.Options{
		APIPrefix:   cfg.Server.APIPrefix,
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		Logger:      log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (api prefix %s)", addr, cfg.Server.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
