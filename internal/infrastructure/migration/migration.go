// Package migration selects and runs the schema strategy for the configured
// database driver.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/aticket/internal/shared/config"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// Manager handles database migrations with a driver-specific strategy.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for MySQL, golang-migrate for PostgreSQL and gorm
// AutoMigrate for SQLite.
func NewManager(driver string, log logger.Interface) (*Manager, error) {
	var strategy Strategy
	switch driver {
	case config.DriverMySQL, "":
		strategy = NewGooseStrategy(log)
	case config.DriverPostgres:
		strategy = NewGolangMigrateStrategy(log)
	case config.DriverSQLite:
		strategy = NewAutoMigrateStrategy(log)
	default:
		return nil, fmt.Errorf("no migration strategy for driver %q", driver)
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) MigrateDown(db *gorm.DB, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return m.strategy.MigrateDown(db, steps)
}

func (m *Manager) GetVersion(db *gorm.DB) (int64, error) {
	return m.strategy.GetVersion(db)
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
