package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/aticket/internal/infrastructure/migration"
	"github.com/orris-inc/aticket/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/orris-inc/aticket/internal/interfaces/http"
)

const (
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

type options struct {
	autoMigrate bool
}

func NewCommand(global *bootstrap.Options) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the ticketing HTTP API with the selected configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.autoMigrate, "auto-migrate", false, "Apply pending database migrations on startup")

	return cmd
}

func run(ctx context.Context, global *bootstrap.Options, opts *options) error {
	rt, err := bootstrap.Init(global)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.Config
	log := rt.Log

	log.Infow("starting server",
		"environment", global.Env,
		"mode", cfg.Server.Mode,
		"driver", cfg.Database.Driver,
		"auto-migrate", opts.autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	db, err := rt.OpenDatabase()
	if err != nil {
		return err
	}

	if err := handleMigrations(rt, opts.autoMigrate); err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(db, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.GetEngine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  idleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(rt *bootstrap.Runtime, autoMigrate bool) error {
	log := rt.Log
	manager, err := migration.NewManager(rt.Config.Database.Driver, log)
	if err != nil {
		return err
	}

	if autoMigrate {
		if rt.Config.Server.Mode == gin.ReleaseMode {
			log.Warnw("auto-migration is enabled in release mode")
		}
		if err := manager.Migrate(rt.DB()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed", "strategy", manager.GetStrategy().GetName())
		return nil
	}

	version, err := manager.GetVersion(rt.DB())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}
