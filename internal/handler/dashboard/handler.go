package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/handler"
	dashboardService "github.com/medagenda/clinic-api/internal/service/dashboard"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

type Handler struct {
	service dashboardService.DashboardServicer
}

func NewHandler(service dashboardService.DashboardServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/clinics/:id/dashboard", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	counts, err := h.service.Overview(c.Request.Context(), actor, clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, counts)
}
