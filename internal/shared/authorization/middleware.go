package authorization

import "github.com/gin-gonic/gin"

const ContextKeyActor = "actor"

// ActorFromContext returns the actor stored by the role resolution middleware.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(ContextKeyActor)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}
