package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/dayplan-api/internal/config"
	"github.com/phrazzld/dayplan-api/internal/events"
	"github.com/phrazzld/dayplan-api/internal/platform/sqlstore"
	"github.com/phrazzld/dayplan-api/internal/service/auth"
	"github.com/phrazzld/dayplan-api/internal/service/schedule"
	"github.com/phrazzld/dayplan-api/internal/store"
)

// application holds the wired dependencies shared by the server and the
// maintenance commands.
type application struct {
	config *config.Config

	// Core services
	logger  *slog.Logger
	db      *sql.DB
	dialect sqlstore.Dialect

	// Stores
	dayStore store.DayStore

	// Service interfaces
	events          events.EventEmitter
	jwtService      auth.JWTService
	scheduleService schedule.Service
}

// newApplication opens the database and creates the services. now is the
// scheduler's clock; nil means time.Now.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	now func() time.Time,
) (*application, error) {
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	db, dialect, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		dialect:    dialect,
		jwtService: jwtService,
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))
	app.events = emitter

	app.dayStore = sqlstore.NewSQLDayStore(db, dialect, logger)
	app.scheduleService = schedule.NewService(db, app.dayStore, schedule.Config{
		HorizonDays: cfg.Schedule.HorizonDays,
		SearchDays:  cfg.Schedule.SearchDays,
		Location:    loc,
		Now:         now,
		Events:      app.events,
	}, logger)

	logger.Info("application initialized",
		"driver", string(dialect),
		"timezone", loc.String(),
		"horizon_days", cfg.Schedule.HorizonDays,
		"search_days", cfg.Schedule.SearchDays)
	return app, nil
}

// migrator returns a Migrator over the application database.
func (app *application) migrator(verbose bool) (*sqlstore.Migrator, error) {
	return sqlstore.NewMigrator(app.db, app.dialect, app.logger, verbose)
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Debug("application resources released")
}
