package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexis-api/internal/config"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
	"github.com/phrazzld/lexis-api/internal/platform/postgres"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/service/review"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/phrazzld/lexis-api/internal/store/memory"
)

// Storage drivers accepted in database.driver.
const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory driver
	db    *sql.DB
	repos store.Repos
	tx    store.Transactor

	scheduler srs.Service
	tracker   *streak.Tracker

	learnerService service.LearnerService
	itemService    service.ItemService
	sessionService service.SessionService
	reviewService  review.Service
}

// newApplication opens storage and builds every service from cfg. The clock of
// every service reads the current time in the configured learner time zone.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.openStorage(ctx); err != nil {
		return nil, err
	}

	loc, err := cfg.SRS.Location()
	if err != nil {
		app.cleanup()
		return nil, err
	}
	clock := func() time.Time { return time.Now().In(loc) }

	app.scheduler = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:        cfg.SRS.MinEaseFactor,
		VocabularyEaseFactor: cfg.SRS.VocabularyEaseFactor,
		GrammarEaseFactor:    cfg.SRS.GrammarEaseFactor,
		FuzzMinInterval:      cfg.SRS.FuzzMinInterval,
		FuzzRatio:            cfg.SRS.FuzzRatio,
		DayStartHour:         cfg.SRS.DayStartHour,
	}), nil)
	app.tracker = &streak.Tracker{
		DayStartHour: cfg.SRS.DayStartHour,
		GoalBonus:    cfg.Learner.GoalBonusPoints,
	}

	settings := service.LearnerSettings{
		DefaultDailyGoal: cfg.Learner.DefaultDailyGoal,
		StreakFreezeCost: cfg.Learner.StreakFreezeCost,
		MaxStreakFreezes: cfg.Learner.MaxStreakFreezes,
	}

	app.learnerService = service.NewLearnerService(app.repos, app.tx, app.tracker, settings, logger,
		service.WithClock(clock))
	app.itemService = service.NewItemService(app.repos, app.tx, app.scheduler,
		cfg.Capture.DeferBelowImportance, logger, service.WithClock(clock))
	app.sessionService = service.NewSessionService(app.repos, app.tracker,
		cfg.Session.ReviewsPerNewItem, logger, service.WithClock(clock))
	app.reviewService = review.NewService(app.tx, app.scheduler, app.tracker, logger,
		review.WithClock(clock))

	logger.Info("application initialized",
		slog.String("timezone", loc.String()),
		slog.Int("day_start_hour", cfg.SRS.DayStartHour))
	return app, nil
}

// openStorage connects the configured backend. For postgres, pending migrations
// are applied before any store is used.
func (app *application) openStorage(ctx context.Context) error {
	switch app.config.Database.Driver {
	case driverMemory:
		mem := memory.New()
		app.repos = store.Repos{Items: mem.Items(), Progress: mem.Progress()}
		app.tx = mem
		app.logger.Warn("using in-memory storage, data is lost on shutdown")
		return nil

	case driverPostgres:
		db, err := postgres.Open(ctx, app.config.Database.URL, poolConfig(app.config.Database))
		if err != nil {
			return err
		}
		if err := postgres.Migrate(ctx, db, "up", app.logger); err != nil {
			_ = db.Close()
			return err
		}

		tx := postgres.NewTransactor(db, app.logger)
		app.db = db
		app.repos = store.Repos{Items: tx.Items(), Progress: tx.Progress()}
		app.tx = tx
		app.logger.Info("database connection established")
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return
	}
	app.db = nil
	app.logger.Info("database connection closed")
}

func poolConfig(c config.DatabaseConfig) postgres.PoolConfig {
	return postgres.PoolConfig{
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}
