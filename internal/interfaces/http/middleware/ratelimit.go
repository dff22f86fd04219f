package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/aticket/internal/infrastructure/ratelimit"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/logger"
	"github.com/orris-inc/aticket/internal/shared/utils"
)

// RateLimit throttles requests per authenticated user, or per client IP
// before authentication. When the limiter backend fails the request is let
// through.
func RateLimit(limiter ratelimit.RateLimiter, scope string, limits ratelimit.Limits, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + rateLimitSubject(c)

		allowed, err := limiter.Allow(c.Request.Context(), key, limits)
		if err != nil {
			log.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			log.Infow("rate limit exceeded", "key", key, "path", c.FullPath())
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func rateLimitSubject(c *gin.Context) string {
	if actor, ok := authorization.ActorFromContext(c); ok {
		return "user:" + strconv.FormatUint(uint64(actor.UserID), 10)
	}
	return "ip:" + c.ClientIP()
}
