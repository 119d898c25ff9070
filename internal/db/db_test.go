package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"wallfleur-be/internal/config"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "localhost",
		DBUser:     "test_user",
		DBPassword: "test_password",
		DBName:     "test_db",
		DBPort:     "5432",
	}

	expected := "host=localhost user=test_user password=test_password dbname=test_db port=5432 sslmode=disable"
	assert.Equal(t, expected, buildDSN(cfg))

	cfg.DBSSLMode = "require"
	assert.Contains(t, buildDSN(cfg), "sslmode=require")

	sqliteCfg := &config.Config{DBDriver: "sqlite", DBName: "file:shop.db"}
	assert.Equal(t, "file:shop.db", buildDSN(sqliteCfg))
}

func TestNewDatabase_InvalidDriver(t *testing.T) {
	cfg := &config.Config{}
	// not registered, so sql.Open fails
	db, err := newDatabaseWithDriver(cfg, "invalid_driver_name")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

func TestNewDatabase_SQLiteInMemory(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBName: ":memory:"}
	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestNewDatabase_PingFailure(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBName: "file:" + filepath.Join(t.TempDir(), "missing", "shop.db") + "?mode=ro"}
	db, err := NewDatabase(cfg)

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to ping DB")
}

func TestDriversRegistered(t *testing.T) {
	drivers := sql.Drivers()
	for _, name := range []string{"postgres", "pgx", "sqlite"} {
		assert.Contains(t, drivers, name)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
