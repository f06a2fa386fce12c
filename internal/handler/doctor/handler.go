package doctor

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/handler"
	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/service/dashboard"
	doctorService "github.com/medagenda/clinic-api/internal/service/doctor"
	"github.com/medagenda/clinic-api/internal/service/event"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

type Handler struct {
	service doctorService.DoctorServicer
	views   dashboard.DashboardServicer
	events  event.Emitter
}

func NewHandler(service doctorService.DoctorServicer, views dashboard.DashboardServicer, events event.Emitter) *Handler {
	return &Handler{service: service, views: views, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/clinics/:id/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:doctorId", h.GetDoctor)
		doctors.PUT("/:doctorId", h.UpdateDoctor)
		doctors.DELETE("/:doctorId", h.DeleteDoctor)
	}
}

type upsertDoctorRequest struct {
	Name                 string  `json:"name"`
	AvatarURL            *string `json:"avatar_url" binding:"omitempty,url"`
	AvailableFromWeekday int     `json:"available_from_weekday" binding:"min=0,max=6"`
	AvailableToWeekday   int     `json:"available_to_weekday" binding:"min=0,max=6"`
	AvailableFromTime    string  `json:"available_from_time"`
	AvailableToTime      string  `json:"available_to_time"`
	Speciality           string  `json:"speciality"`
	PriceCents           int64   `json:"price_cents"`
}

func (r *upsertDoctorRequest) toModel(clinicID uuid.UUID) *model.Doctor {
	return &model.Doctor{
		ClinicID:             clinicID,
		Name:                 r.Name,
		AvatarURL:            r.AvatarURL,
		AvailableFromWeekday: r.AvailableFromWeekday,
		AvailableToWeekday:   r.AvailableToWeekday,
		AvailableFromTime:    r.AvailableFromTime,
		AvailableToTime:      r.AvailableToTime,
		Speciality:           r.Speciality,
		PriceCents:           r.PriceCents,
	}
}

func (h *Handler) applyStale(c *gin.Context, keys []string) {
	h.views.Invalidate(keys)
	h.events.EmitStale(c.Request.Context(), keys)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	var req upsertDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	doctor := req.toModel(clinicID)

	stale, err := h.service.CreateDoctor(c.Request.Context(), actor, doctor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "DOCTOR_CREATE", doctor)

	httputil.RespondWithCreated(c, doctor)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	doctors, err := h.service.ListDoctors(c.Request.Context(), actor, clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid doctor ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	doctor, err := h.service.GetDoctor(c.Request.Context(), actor, clinicID, doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid doctor ID", err))
		return
	}

	var req upsertDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	doctor := req.toModel(clinicID)
	doctor.ID = doctorID
	doctor.UpdatedAt = time.Now()

	stale, err := h.service.UpdateDoctor(c.Request.Context(), actor, doctor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "DOCTOR_UPDATE", doctor)

	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid doctor ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	stale, err := h.service.DeleteDoctor(c.Request.Context(), actor, clinicID, doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "DOCTOR_DELETE", gin.H{"id": doctorID, "clinic_id": clinicID})

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
