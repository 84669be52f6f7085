package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/storage"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/logging"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// annotationStandalone marks commands that need neither config nor storage.
const annotationStandalone = "standalone"

// appDeps groups the dependencies initialized at startup.
type appDeps struct {
	config  *config.Config
	logger  *slog.Logger
	logFile io.Closer
	storage ports.Storage

	// Resolved from the flags and config; the flag variables stay as given.
	dbPath  string
	logPath string
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

func isStandalone(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[annotationStandalone]
	return ok
}

// initializeServices loads configuration and opens the log file. Storage is
// opened on demand by openStorage.
func initializeServices(cmd *cobra.Command) error {
	if err := validateOutputFormat(outputFormat); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if configPath != "" {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// If the default config cannot be loaded, use defaults
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using defaults\n", err)
		if cfg, err = config.FromEnv(); err != nil {
			return fmt.Errorf("failed to build default config: %w", err)
		}
	}
	app.config = cfg
	app.dbPath = dbPath
	if app.dbPath == "" {
		app.dbPath = config.GetDBPath(cfg)
	}
	app.logPath = logPath
	if app.logPath == "" {
		app.logPath = config.GetLogPath(cfg)
	}

	logger, closer, err := logging.Setup(app.logPath, cfg.Log.Level, debugMode)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
		logger = logging.Discard()
	}
	app.logger = logger
	app.logFile = closer

	app.logger.Debug("config.loaded",
		"tick_interval", cfg.Interval(),
		"journal", cfg.Journal.Enabled,
		"data_dir", cfg.Storage.DataDir,
	)
	return nil
}

// openStorage opens the journal database, creating its directory.
func openStorage() (ports.Storage, error) {
	if app.storage != nil {
		return app.storage, nil
	}

	if err := os.MkdirAll(filepath.Dir(app.dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.New(app.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.storage = store
	app.logger.Debug("storage.opened", "path", app.dbPath)
	return store, nil
}

// pruneJournal drops entries older than the configured retention.
func pruneJournal(ctx context.Context, repo ports.JournalRepository) {
	days := app.config.Journal.RetentionDays
	if days <= 0 {
		return
	}
	n, err := services.NewJournalService(repo).Prune(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		app.logger.Warn("journal.prune", "err", err)
		return
	}
	if n > 0 {
		app.logger.Info("journal.prune", "deleted", n, "retention_days", days)
	}
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var firstErr error
	if app.storage != nil {
		firstErr = app.storage.Close()
	}
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	app = appDeps{}
	return firstErr
}
