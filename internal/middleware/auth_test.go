package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/medagenda/clinic-api/internal/handler"
	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type fakeValidator struct {
	actor *model.Actor
}

func (v *fakeValidator) ValidateToken(token string) (*model.Actor, error) {
	if token == "good-token" && v.actor != nil {
		return v.actor, nil
	}
	return nil, apperrors.NewUnauthorized(nil)
}

func authTestEngine(v *fakeValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewAuthMiddleware(v).Authenticate())
	engine.GET("/whoami", func(c *gin.Context) {
		actor := handler.ActorFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": actor.Email})
	})
	return engine
}

func TestAuthenticate(t *testing.T) {
	actor := &model.Actor{UserID: uuid.New(), Email: "ana@example.com"}
	engine := authTestEngine(&fakeValidator{actor: actor})

	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ana@example.com")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "good-token")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
