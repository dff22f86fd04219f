package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/constants"
	"github.com/orris-inc/aticket/internal/shared/logger"
	"github.com/orris-inc/aticket/internal/shared/utils"
)

// PolicyEnforcer resolves roles and evaluates role policies.
type PolicyEnforcer interface {
	ResolveRole(ctx context.Context, userID uint) (authorization.Role, error)
	Enforce(role authorization.Role, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// ResolveActor turns the authenticated user into an authorization.Actor.
// It must run after RequireAuth.
func (m *PermissionMiddleware) ResolveActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(constants.ContextKeyUserID)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}
		uid, _ := userID.(uint)

		role, err := m.enforcer.ResolveRole(c.Request.Context(), uid)
		if err != nil {
			m.logger.Errorw("failed to resolve user role", "error", err, "user_id", uid)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to check user roles")
			c.Abort()
			return
		}

		c.Set(authorization.ContextKeyActor, authorization.Actor{
			UserID:   uid,
			Username: c.GetString(constants.ContextKeyUsername),
			Role:     role,
		})
		c.Next()
	}
}

func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := authorization.ActorFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(actor.Role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", actor.UserID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", actor.UserID, "role", actor.Role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
