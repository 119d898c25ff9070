package db

import (
	"errors"
	"fmt"

	"wallfleur-be/internal/config"
	"wallfleur-be/internal/logger"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const pgUniqueViolation = "23505"

func buildDSN(cfg *config.Config) string {
	if cfg.DBDriver == "sqlite" {
		return cfg.DBName
	}
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode,
	)
}

// NewDatabase opens and pings the configured database. Supported drivers are
// "postgres" (lib/pq), "pgx" (pgx stdlib) and "sqlite" (modernc).
func NewDatabase(cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DBDriver
	if driver == "" {
		driver = "postgres"
	}
	return newDatabaseWithDriver(cfg, driver)
}

func newDatabaseWithDriver(cfg *config.Config, driver string) (*sqlx.DB, error) {
	database, err := sqlx.Open(driver, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if driver == "sqlite" {
		// one writer; sqlite returns SQLITE_BUSY otherwise
		database.SetMaxOpenConns(1)
	}

	if err := database.Ping(); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.L().Info("Database connection established", zap.String("driver", driver))
	return database, nil
}

// IsUniqueViolation reports whether err is a unique constraint violation from
// either postgres driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
