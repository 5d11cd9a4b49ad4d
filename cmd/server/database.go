package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/reino/financas-api/internal/platform/postgres"
	"github.com/reino/financas-api/internal/platform/sqlite"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// setupStores opens the configured database and builds the stores over it.
func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Database.Driver {
	case driverPostgres:
		db, err := openPostgres(ctx, app.config.Database.URL)
		if err != nil {
			return err
		}
		app.db = db

		if err := postgres.Migrate(ctx, db, app.logger); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

		app.accountStore = postgres.NewPostgresAccountStore(db, app.logger)
		app.entryStore = postgres.NewPostgresEntryStore(db, app.logger)

	case driverSQLite:
		gdb, err := sqlite.Open(app.config.Database.URL, app.logger)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		db, err := gdb.DB()
		if err != nil {
			return fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		app.db = db

		app.accountStore = sqlite.NewAccountStore(gdb, app.logger)
		app.entryStore = sqlite.NewEntryStore(gdb, app.logger)

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}

	app.logger.Info("database connection established", "driver", app.config.Database.Driver)
	return nil
}

// openPostgres opens a pgx-backed pool and verifies it with a ping.
func openPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
