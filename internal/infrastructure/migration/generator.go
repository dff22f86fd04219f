package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/orris-inc/aticket/internal/shared/logger"
)

var (
	migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	versionPrefix        = regexp.MustCompile(`^(\d+)_`)
)

// Generator creates new script skeletons in the source tree so that they
// get embedded on the next build: one goose file under mysql/ and an up/down
// pair under postgres/, sharing the next free version number.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes the files and returns their paths.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	if !migrationNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}

	mysqlDir := filepath.Join(g.scriptsPath, "mysql")
	pgDir := filepath.Join(g.scriptsPath, "postgres")
	for _, dir := range []string{mysqlDir, pgDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create scripts directory: %w", err)
		}
	}

	next, err := g.nextVersion(mysqlDir, pgDir)
	if err != nil {
		return nil, err
	}

	created := g.now().Format("2006-01-02 15:04:05")
	files := map[string]string{
		filepath.Join(mysqlDir, fmt.Sprintf("%05d_%s.sql", next, name)): fmt.Sprintf(
			"-- Migration: %s\n-- Created: %s\n\n-- +goose Up\n\n-- +goose Down\n", name, created),
		filepath.Join(pgDir, fmt.Sprintf("%06d_%s.up.sql", next, name)): fmt.Sprintf(
			"-- Migration: %s\n-- Created: %s\n", name, created),
		filepath.Join(pgDir, fmt.Sprintf("%06d_%s.down.sql", next, name)): fmt.Sprintf(
			"-- Rollback: %s\n-- Created: %s\n", name, created),
	}

	paths := make([]string, 0, len(files))
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	g.logger.Infow("migration files created", "name", name, "version", next)
	return paths, nil
}

func (g *Generator) nextVersion(dirs ...string) (int, error) {
	highest := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, e := range entries {
			m := versionPrefix.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			v, err := strconv.Atoi(m[1])
			if err == nil && v > highest {
				highest = v
			}
		}
	}
	return highest + 1, nil
}
