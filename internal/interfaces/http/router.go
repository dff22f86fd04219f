package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orris-inc/aticket/internal/infrastructure/metrics"
	_ "github.com/orris-inc/aticket/internal/interfaces/http/docs"
	"github.com/orris-inc/aticket/internal/interfaces/http/middleware"
	"github.com/orris-inc/aticket/internal/interfaces/http/routes"
)

// SetupRoutes installs the global middlewares, the probes and the /api/v1
// routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.Metrics())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.APIVersion())

	c.engine.GET("/health", c.healthCheck)
	c.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := c.engine.Group("/api/v1")
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		WriteLimit:           c.writeLimit,
	})
}

func (c *Container) healthCheck(ctx *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok"}

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		c.log.Warnw("health check failed", "error", err)
		status = http.StatusServiceUnavailable
		body = gin.H{"status": "unavailable"}
	}
	ctx.JSON(status, body)
}
