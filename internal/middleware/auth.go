package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-api/internal/handler"
	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

type tokenValidator interface {
	ValidateToken(token string) (*model.Actor, error)
}

type AuthMiddleware struct {
	auth tokenValidator
}

func NewAuthMiddleware(auth tokenValidator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate resolves the Bearer token to an actor and stores it on the
// context for the handlers downstream.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, apperrors.NewUnauthorized(nil))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, apperrors.NewUnauthorized(nil))
			c.Abort()
			return
		}

		actor, err := m.auth.ValidateToken(parts[1])
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewUnauthorized(err))
			c.Abort()
			return
		}

		c.Set(handler.ContextActor, actor)
		c.Next()
	}
}
