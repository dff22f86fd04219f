// Package bootstrap holds the start-up steps shared by every command.
package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/aticket/internal/infrastructure/config"
	"github.com/orris-inc/aticket/internal/infrastructure/database"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// Options are the global flags of the root command.
type Options struct {
	Env        string
	ConfigPath string
}

type Runtime struct {
	Config *config.Config
	Log    logger.Interface
}

// Init loads configuration, the logger and the business timezone.
func Init(opts *Options) (*Runtime, error) {
	cfg, err := config.Load(opts.Env, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Business.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return &Runtime{Config: cfg, Log: logger.NewLogger()}, nil
}

// OpenDatabase connects the process-wide database handle.
func (r *Runtime) OpenDatabase() (*gorm.DB, error) {
	if err := database.Init(&r.Config.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database.Get(), nil
}

// Close releases the database and flushes the logger.
func (r *Runtime) Close() {
	if err := database.Close(); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
	_ = logger.Sync()
}

// DB returns the handle opened by OpenDatabase.
func (r *Runtime) DB() *gorm.DB {
	return database.Get()
}
