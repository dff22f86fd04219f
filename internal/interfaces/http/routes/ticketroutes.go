package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/aticket/internal/infrastructure/permission"
	tickethandlers "github.com/orris-inc/aticket/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/aticket/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// WriteLimit guards mutating routes. Nil disables it.
	WriteLimit gin.HandlerFunc
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	allow := config.PermissionMiddleware.RequirePermission
	limit := config.WriteLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth(), config.PermissionMiddleware.ResolveActor())
	{
		tickets.POST("",
			allow(permission.ResourceTicket, permission.ActionCreate),
			limit,
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			allow(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.ListTickets)

		// Action endpoints are registered before /:id.
		tickets.PATCH("/:id/status",
			allow(permission.ResourceTicket, permission.ActionStatus),
			limit,
			config.TicketHandler.ChangeStatus)
		tickets.PATCH("/:id/assignee",
			allow(permission.ResourceTicket, permission.ActionAssign),
			limit,
			config.TicketHandler.AssignTicket)
		tickets.POST("/:id/comments",
			allow(permission.ResourceTicket, permission.ActionComment),
			limit,
			config.TicketHandler.AddComment)
		tickets.POST("/:id/attachments",
			allow(permission.ResourceTicket, permission.ActionAttach),
			limit,
			config.TicketHandler.AddAttachments)
		tickets.GET("/:id/audit",
			allow(permission.ResourceAudit, permission.ActionRead),
			config.TicketHandler.ListAudit)

		tickets.GET("/:id",
			allow(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.GetTicket)
	}

	departments := api.Group("/departments")
	departments.Use(config.AuthMiddleware.RequireAuth(), config.PermissionMiddleware.ResolveActor())
	{
		departments.GET("",
			allow(permission.ResourceDepartment, permission.ActionRead),
			config.TicketHandler.ListDepartments)
	}
}
