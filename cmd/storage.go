package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/realty-intake-service/internal/config"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/kvstore"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/memory"
	"github.com/m04kA/realty-intake-service/pkg/dbmetrics"
	"github.com/m04kA/realty-intake-service/pkg/logger"
	"github.com/m04kA/realty-intake-service/pkg/metrics"
	"github.com/m04kA/realty-intake-service/pkg/psqlbuilder"
)

// openStore поднимает хранилище записей по storage.driver.
// Возвращаемая функция закрывает соединение с базой.
func openStore(
	ctx context.Context,
	cfg config.StorageConfig,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (intake.RecordStore, func(), error) {
	var (
		driver  string
		dsn     string
		dialect psqlbuilder.Dialect
	)

	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory storage: records are lost on restart")
		return memory.NewStore(), func() {}, nil
	case config.DriverPostgres:
		driver, dsn, dialect = "postgres", cfg.DSN(), psqlbuilder.Postgres
	case config.DriverSQLite:
		driver, dialect = "sqlite", psqlbuilder.SQLite
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	closeDB := func() { _ = db.Close() }

	// Настраиваем connection pool
	if dialect == psqlbuilder.SQLite {
		// sqlite допускает одного писателя
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	var exec kvstore.DBExecutor = db
	if metricsCollector != nil {
		exec = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	store, err := kvstore.NewStore(exec, dialect)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}

	if dialect == psqlbuilder.Postgres {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)
	} else {
		log.Info("Successfully opened sqlite database at %s", cfg.SQLitePath)
	}
	return store, closeDB, nil
}
