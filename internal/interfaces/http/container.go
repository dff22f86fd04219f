package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	ticketApp "github.com/orris-inc/aticket/internal/application/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/auth"
	"github.com/orris-inc/aticket/internal/infrastructure/config"
	"github.com/orris-inc/aticket/internal/infrastructure/notification"
	"github.com/orris-inc/aticket/internal/infrastructure/permission"
	"github.com/orris-inc/aticket/internal/interfaces/http/middleware"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, the ticket
// service and its handlers. Shutdown releases what it opened.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Services
	jwtSvc        *auth.JWTService
	enforcer      *permission.Enforcer
	dispatcher    *notification.Dispatcher
	ticketService *ticketApp.ServiceDDD

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	writeLimit           gin.HandlerFunc
}

// NewContainer wires every component in dependency order.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Repositories, Auth, Permissions, Redis
	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 2: Notifications - Sender, Event bus, Dispatcher
	if err := c.initNotifications(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Ticket service and handlers
	c.initTicketing()

	return c, nil
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// Shutdown closes the Redis client. The database is owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
}
