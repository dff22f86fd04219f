package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/aticket/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/aticket/internal/interfaces/cli/events"
	"github.com/orris-inc/aticket/internal/interfaces/cli/migrate"
	"github.com/orris-inc/aticket/internal/interfaces/cli/seed"
	"github.com/orris-inc/aticket/internal/interfaces/cli/server"
)

func main() {
	opts := &bootstrap.Options{}

	rootCmd := &cobra.Command{
		Use:          "aticket",
		Short:        "aticket - department ticketing service",
		Long:         `aticket runs the ticketing HTTP API and its administrative commands: migrations, seeding and event tailing.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", envOr("ENV", "development"), "Environment (development, test, production)")
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	rootCmd.AddCommand(
		server.NewCommand(opts),
		migrate.NewCommand(opts),
		seed.NewCommand(opts),
		events.NewCommand(opts),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
