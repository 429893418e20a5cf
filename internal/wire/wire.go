// Package wire provides dependency injection for the tracker.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/BobBjorklund/progressTracker/internal/adapters/cli"
	"github.com/BobBjorklund/progressTracker/internal/adapters/spreadsheet"
	"github.com/BobBjorklund/progressTracker/internal/adapters/sqlite"
	"github.com/BobBjorklund/progressTracker/internal/app"
	"github.com/BobBjorklund/progressTracker/internal/config"
	"github.com/BobBjorklund/progressTracker/internal/db"
	"github.com/BobBjorklund/progressTracker/internal/logging"
	"github.com/BobBjorklund/progressTracker/internal/ports/primary"
)

var (
	cfg            *config.Config
	logger         *zap.Logger
	database       *sql.DB
	trackerService primary.TrackerService
	once           sync.Once
)

// Config returns the resolved configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// TrackerService returns the singleton TrackerService instance.
func TrackerService() primary.TrackerService {
	once.Do(initServices)
	return trackerService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	config.LoadEnv()

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	database, err = db.Open(cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.String("data_dir", cfg.DataDir), zap.Error(err))
	}

	// Secondary adapters
	kv := sqlite.NewKVStore(database)
	reader := spreadsheet.NewReader()

	svc := app.NewTrackerService(kv, reader, logger)
	result, err := svc.Load(context.Background())
	if err != nil {
		logger.Fatal("failed to load roster", zap.Error(err))
	}
	logger.Debug("roster loaded",
		zap.String("db", db.Path(cfg.DataDir)),
		zap.Int("agents", result.Agents),
		zap.Bool("migrated", result.Migrated))

	trackerService = svc
}

// TrackerAdapter returns a new TrackerAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TrackerAdapter() *cliadapter.TrackerAdapter {
	return TrackerAdapterWithOutput(os.Stdout)
}

// TrackerAdapterWithOutput returns a new TrackerAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func TrackerAdapterWithOutput(out io.Writer) *cliadapter.TrackerAdapter {
	once.Do(initServices)
	return cliadapter.NewTrackerAdapter(trackerService, out)
}

// Shutdown flushes the logger and closes the database if they were opened.
func Shutdown() {
	if logger != nil {
		_ = logger.Sync()
	}
	if database != nil {
		_ = database.Close()
	}
}
