package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/aticket/internal/infrastructure/permission"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/seeds"
	"github.com/orris-inc/aticket/internal/infrastructure/repository"
	"github.com/orris-inc/aticket/internal/interfaces/cli/bootstrap"
)

func NewCommand(global *bootstrap.Options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load departments, users and role policies",
		Long: `Upsert departments and users from a YAML seed file and install the default role policies.
Without --file only the default departments are loaded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap.Init(global)
			if err != nil {
				return err
			}
			defer rt.Close()

			db, err := rt.OpenDatabase()
			if err != nil {
				return err
			}

			seedFile := &seeds.File{}
			if file != "" {
				if seedFile, err = seeds.ReadFile(file); err != nil {
					return err
				}
			}

			enforcer, err := permission.NewEnforcer(db, rt.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize permission enforcer: %w", err)
			}
			if err := enforcer.InitPolicies(); err != nil {
				return fmt.Errorf("failed to install policies: %w", err)
			}

			loader := seeds.NewLoader(
				repository.NewDepartmentRepository(db),
				repository.NewUserDirectory(db),
				enforcer,
				rt.Log,
			)
			res, err := loader.Load(cmd.Context(), seedFile)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d departments and %d users\n", res.Departments, res.Users)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a YAML seed file")

	return cmd
}
