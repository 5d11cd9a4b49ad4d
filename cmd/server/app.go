package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/reino/financas-api/internal/config"
	"github.com/reino/financas-api/internal/events"
	"github.com/reino/financas-api/internal/service"
	"github.com/reino/financas-api/internal/service/auth"
	"github.com/reino/financas-api/internal/store"
)

// application holds the shared dependencies and releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is the pool behind either backend; the sqlite stores reach it
	// through gorm.
	db          *sql.DB
	redisClient *goredis.Client

	accountStore store.AccountStore
	entryStore   store.EntryStore

	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	publisher  events.Publisher

	accountService service.AccountService
	entryService   service.EntryService
}

// newApplication opens storage and the event backend and builds the
// services on top of them. On error everything opened so far is closed.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}
	if err := app.init(ctx); err != nil {
		app.cleanup()
		return nil, err
	}
	logger.Info("application initialized successfully")
	return app, nil
}

func (app *application) init(ctx context.Context) error {
	var err error
	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(app.config.Auth.BcryptCost)

	if err := app.setupStores(ctx); err != nil {
		return err
	}

	app.publisher, err = app.setupPublisher(ctx)
	if err != nil {
		return err
	}

	app.accountService, err = service.NewAccountService(app.accountStore, app.hasher, app.publisher, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create account service: %w", err)
	}

	app.entryService, err = service.NewEntryService(app.entryStore, app.publisher, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create entry service: %w", err)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
		app.redisClient = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
		app.db = nil
	}
}
