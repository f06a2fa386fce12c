package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-api/internal/model"
)

// ContextActor is the gin context key the auth middleware stores the
// authenticated actor under.
const ContextActor = "actor"

// ActorFromContext returns the authenticated actor for the request, or nil
// when the request was not authenticated. Services treat nil as an
// authorization error, so handlers pass the result through unchecked.
func ActorFromContext(c *gin.Context) *model.Actor {
	v, exists := c.Get(ContextActor)
	if !exists {
		return nil
	}
	actor, ok := v.(*model.Actor)
	if !ok {
		return nil
	}
	return actor
}
