// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/cmd/httpserver"
	"github.com/cbk-gemmy/finance-platform/pkg/configpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/dbpkg"
)

// LoadConfig loads the app config from path and fails the test on error.
func LoadConfig(t *testing.T, path string) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(path)
	if err != nil {
		t.Fatalf("configpkg.Load(%q) returned error: %v", path, err)
	}

	return config
}

// SetupServer returns test server that cleans up database after each integration test.
func SetupServer(t *testing.T, configPath string) *httpserver.Server {
	t.Helper()

	config := LoadConfig(t, configPath)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, zerolog.Nop(), config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config) returned error: %v`, err)
	}

	return server
}

// Flush truncates all application tables without dropping them.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables
	WHERE table_schema = 'public' AND table_name <> 'schema_migrations';`

	row := db.QueryRow(query)

	if err := row.Scan(&tables); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB migrates the database, connects to it for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	if err := dbpkg.Migrate(driver, source); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	db, err := dbpkg.Setup(context.Background(), driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	if err := dbpkg.Migrate(driver, source); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	db, err := dbpkg.Setup(context.Background(), driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
