package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-order-saga/internal/platform/migrations"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectAndMigrate dials PostgreSQL, applies the schema and returns the DB plus a cleanup function.
// An empty DSN yields a nil DB and nil error so callers can fall back to memory. A configured DSN that
// cannot be reached or migrated is an error: the caller asked for durable storage.
func ConnectAndMigrate(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() {}
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order store")
		return nil, noop, nil
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		return nil, noop, fmt.Errorf("connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, noop, fmt.Errorf("unwrap postgres connection: %w", err)
	}
	if err := migrations.Run(db); err != nil {
		_ = sqlDB.Close()
		return nil, noop, fmt.Errorf("migrate orders schema: %w", err)
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }, nil
}
