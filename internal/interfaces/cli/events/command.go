// Package events follows the ticket event stream published on redis.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/orris-inc/aticket/internal/infrastructure/notification"
	"github.com/orris-inc/aticket/internal/interfaces/cli/bootstrap"
)

func NewCommand(global *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Ticket event stream tools",
	}
	cmd.AddCommand(newTailCommand(global))
	return cmd
}

func newTailCommand(global *bootstrap.Options) *cobra.Command {
	var channel string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print ticket events as JSON lines until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap.Init(global)
			if err != nil {
				return err
			}
			defer rt.Close()

			cfg := rt.Config
			if channel == "" {
				channel = cfg.Notification.Redis.Channel
			}

			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.GetAddr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
			}

			bus := notification.NewRedisEventBus(client, channel, rt.Log)
			enc := json.NewEncoder(cmd.OutOrStdout())
			rt.Log.Infow("following ticket events", "channel", bus.Channel())

			err = bus.Subscribe(ctx, func(_ context.Context, msg notification.TicketEventMessage) {
				if err := enc.Encode(msg); err != nil {
					rt.Log.Warnw("failed to print event", "error", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "Redis channel (defaults to notification.redis.channel)")

	return cmd
}
