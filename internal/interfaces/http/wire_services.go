package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	ticketApp "github.com/orris-inc/aticket/internal/application/ticket"
	ticketServices "github.com/orris-inc/aticket/internal/application/ticket/services"
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/auth"
	"github.com/orris-inc/aticket/internal/infrastructure/config"
	"github.com/orris-inc/aticket/internal/infrastructure/notification"
	"github.com/orris-inc/aticket/internal/infrastructure/permission"
	"github.com/orris-inc/aticket/internal/infrastructure/ratelimit"
	"github.com/orris-inc/aticket/internal/interfaces/http/middleware"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	shareddb "github.com/orris-inc/aticket/internal/shared/db"
	"github.com/orris-inc/aticket/internal/shared/i18n"
	"github.com/orris-inc/aticket/internal/shared/logger"
	"github.com/orris-inc/aticket/internal/shared/services/markdown"
)

const redisPingTimeout = 5 * time.Second

// ============================================================
// Section 1: Infrastructure - Repositories, Auth, Permissions, Redis
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.repos = newRepositories(c.db, log)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)

	if cfg.Notification.Redis.Enabled || cfg.RateLimit.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	if cfg.RateLimit.Enabled {
		c.writeLimit = middleware.RateLimit(ratelimit.NewRedisRateLimiter(c.redis), "ticket_write", ratelimit.Limits{
			RequestsPerMinute: cfg.RateLimit.WritesPerMinute,
			RequestsPerHour:   cfg.RateLimit.WritesPerHour,
		}, log.Named("ratelimit"))
	}
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Notifications - Sender, Event bus, Dispatcher
// ============================================================

func (c *Container) initNotifications() error {
	cfg := c.cfg
	log := c.log.Named("notification")

	sender, err := notification.NewSender(cfg.Notification.Backend, cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize notification sender: %w", err)
	}

	var publisher notification.EventPublisher
	if cfg.Notification.Redis.Enabled {
		publisher = notification.NewRedisEventBus(c.redis, cfg.Notification.Redis.Channel, log)
	}

	recipients := notification.NewRecipientResolver(c.repos.userDirectory, func(code department.Code) string {
		return cfg.Notification.DepartmentEmail(code.String())
	})
	renderer := notification.NewRenderer(i18n.NewTranslator(cfg.Business.Locale), markdown.NewRenderer(), cfg.Server.TicketURL)

	c.dispatcher = notification.NewDispatcher(sender, publisher, recipients, renderer, cfg.Notification.Timeout(), log)
	return nil
}

// ============================================================
// Section 3: Ticket service and handlers
// ============================================================

func (c *Container) initTicketing() {
	cfg := c.cfg
	clock := biztime.SystemClock

	c.ticketService = ticketApp.NewServiceDDD(ticketApp.Dependencies{
		TxManager:   shareddb.NewTransactionManager(c.db),
		Protocols:   ticketServices.NewProtocolGenerator(c.repos.counterStore, clock, c.log),
		Tickets:     c.repos.ticketRepo,
		Comments:    c.repos.commentRepo,
		Attachments: c.repos.attachmentRepo,
		Audit:       c.repos.auditRepo,
		Departments: c.repos.departmentRepo,
		Users:       c.repos.userDirectory,
		Notifier:    c.dispatcher,
		Policy: ticket.AttachmentPolicy{
			MaxSizeBytes:      cfg.Attachments.MaxSizeBytes(),
			AllowedExtensions: cfg.Attachments.AllowedExtensions,
		},
		Labels: i18n.NewTranslator(cfg.Business.Locale),
		Clock:  clock,
	}, c.log.Named("ticket"))

	c.hdlrs = newHandlers(c.ticketService, c.log)
}
