package clinic

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/handler"
	clinicService "github.com/medagenda/clinic-api/internal/service/clinic"
	"github.com/medagenda/clinic-api/internal/service/dashboard"
	"github.com/medagenda/clinic-api/internal/service/event"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

type Handler struct {
	service clinicService.ClinicServicer
	views   dashboard.DashboardServicer
	events  event.Emitter
}

func NewHandler(service clinicService.ClinicServicer, views dashboard.DashboardServicer, events event.Emitter) *Handler {
	return &Handler{service: service, views: views, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.POST("", h.CreateClinic)
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
		clinics.PUT("/:id", h.UpdateClinic)
		clinics.DELETE("/:id", h.DeleteClinic)
		clinics.GET("/:id/members", h.ListMembers)
		clinics.POST("/:id/members", h.AddMember)
		clinics.DELETE("/:id/members/:userId", h.RemoveMember)
	}
}

type upsertClinicRequest struct {
	Name string `json:"name" binding:"required"`
}

type addMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// applyStale invalidates the dirty view keys locally and signals the
// presentation layer through the outbox.
func (h *Handler) applyStale(c *gin.Context, keys []string) {
	h.views.Invalidate(keys)
	h.events.EmitStale(c.Request.Context(), keys)
}

func (h *Handler) CreateClinic(c *gin.Context) {
	var req upsertClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	clinic, stale, err := h.service.CreateClinic(c.Request.Context(), actor, req.Name)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "CLINIC_CREATE", clinic)

	httputil.RespondWithCreated(c, clinic)
}

func (h *Handler) ListClinics(c *gin.Context) {
	actor := handler.ActorFromContext(c)
	clinics, err := h.service.ListClinics(c.Request.Context(), actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, clinics)
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	clinic, err := h.service.GetClinic(c.Request.Context(), actor, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, clinic)
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	var req upsertClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	clinic, stale, err := h.service.UpdateClinic(c.Request.Context(), actor, id, req.Name)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "CLINIC_UPDATE", clinic)

	httputil.RespondWithSuccess(c, clinic)
}

func (h *Handler) DeleteClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	stale, err := h.service.DeleteClinic(c.Request.Context(), actor, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "CLINIC_DELETE", gin.H{"id": id})

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func (h *Handler) ListMembers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	members, err := h.service.ListMembers(c.Request.Context(), actor, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, members)
}

func (h *Handler) AddMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	member, stale, err := h.service.AddMember(c.Request.Context(), actor, id, req.UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "MEMBER_ADD", member)

	httputil.RespondWithCreated(c, member)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid user ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	stale, err := h.service.RemoveMember(c.Request.Context(), actor, id, userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "MEMBER_REMOVE", gin.H{"clinic_id": id, "user_id": userID})

	httputil.RespondWithSuccess(c, gin.H{"removed": true})
}
