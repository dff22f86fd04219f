package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orris-inc/aticket/internal/infrastructure/migration"
	"github.com/orris-inc/aticket/internal/interfaces/cli/bootstrap"
)

const defaultScriptsDir = "./internal/infrastructure/migration/scripts"

func NewCommand(global *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply, roll back, inspect the current version and create new scripts.`,
	}

	cmd.AddCommand(
		newUpCommand(global),
		newDownCommand(global),
		newStatusCommand(global),
		newCreateCommand(global),
	)

	return cmd
}

func newUpCommand(global *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, manager, err := initEnv(global)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.Log.Infow("running up migrations", "strategy", manager.GetStrategy().GetName())
			if err := manager.Migrate(rt.DB()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			rt.Log.Infow("migrations completed successfully")
			return nil
		},
	}
}

func newDownCommand(global *bootstrap.Options) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1")
			}
			rt, manager, err := initEnv(global)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.Log.Infow("running down migrations", "steps", steps)
			if err := manager.MigrateDown(rt.DB(), steps); err != nil {
				return fmt.Errorf("down migration failed: %w", err)
			}

			rt.Log.Infow("down migration completed successfully")
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand(global *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, manager, err := initEnv(global)
			if err != nil {
				return err
			}
			defer rt.Close()

			version, err := manager.GetVersion(rt.DB())
			if err != nil {
				return fmt.Errorf("failed to get migration version: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Migration Status:\n")
			fmt.Fprintf(out, "  Driver:          %s\n", rt.Config.Database.Driver)
			fmt.Fprintf(out, "  Strategy:        %s\n", manager.GetStrategy().GetName())
			fmt.Fprintf(out, "  Current Version: %d\n", version)
			return nil
		},
	}
}

func newCreateCommand(global *bootstrap.Options) *cobra.Command {
	var (
		name string
		dir  string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create empty migration scripts for every supported driver under the scripts directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap.Init(global)
			if err != nil {
				return err
			}
			defer rt.Close()

			scriptsPath, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("failed to get scripts path: %w", err)
			}

			files, err := migration.NewGenerator(scriptsPath, rt.Log).CreateMigration(name)
			if err != nil {
				return fmt.Errorf("failed to create migration: %w", err)
			}

			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&dir, "dir", defaultScriptsDir, "Migration scripts directory")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv(global *bootstrap.Options) (*bootstrap.Runtime, *migration.Manager, error) {
	rt, err := bootstrap.Init(global)
	if err != nil {
		return nil, nil, err
	}

	if _, err := rt.OpenDatabase(); err != nil {
		rt.Close()
		return nil, nil, err
	}

	manager, err := migration.NewManager(rt.Config.Database.Driver, rt.Log)
	if err != nil {
		rt.Close()
		return nil, nil, err
	}
	return rt, manager, nil
}
