package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/database"
	"github.com/orris-inc/aticket/internal/infrastructure/migration"
	"github.com/orris-inc/aticket/internal/shared/config"
)

var testNow = time.Date(2024, 9, 12, 9, 30, 0, 0, time.UTC)

func sqliteConfig(path string) *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver:        config.DriverSQLite,
		SQLitePath:    path,
		BusyTimeoutMS: 5000,
	}
}

// setupTestDB opens a migrated SQLite file database that lives for the test.
func setupTestDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aticket.db")
	db := openTestDB(t, path)
	require.NoError(t, db.AutoMigrate(migration.AutoMigrateModels()...))
	return db, path
}

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqliteConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedDepartment(t *testing.T, db *gorm.DB, code department.Code) *department.Department {
	t.Helper()
	d, err := department.NewDepartment(code, "Department "+code.String())
	require.NoError(t, err)
	require.NoError(t, NewDepartmentRepository(db).Upsert(t.Context(), d))
	return d
}

func newTestTicket(t *testing.T, d *department.Department, protocol string, createdBy uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.NewTicketParams{
		Title:        "Printer on floor 2 jammed",
		Description:  "Paper jam, tray 3.",
		DepartmentID: d.ID(),
		Department:   d.Code(),
		CreatedBy:    createdBy,
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, tk.AssignProtocol(protocol))
	return tk
}
