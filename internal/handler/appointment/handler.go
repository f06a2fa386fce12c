package appointment

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/handler"
	"github.com/medagenda/clinic-api/internal/model"
	appointmentService "github.com/medagenda/clinic-api/internal/service/appointment"
	"github.com/medagenda/clinic-api/internal/service/dashboard"
	"github.com/medagenda/clinic-api/internal/service/event"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

type Handler struct {
	service appointmentService.AppointmentServicer
	views   dashboard.DashboardServicer
	events  event.Emitter
}

func NewHandler(service appointmentService.AppointmentServicer, views dashboard.DashboardServicer, events event.Emitter) *Handler {
	return &Handler{service: service, views: views, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/clinics/:id/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:appointmentId", h.GetAppointment)
		appointments.DELETE("/:appointmentId", h.DeleteAppointment)
	}
}

type createAppointmentRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
}

func (h *Handler) applyStale(c *gin.Context, keys []string) {
	h.views.Invalidate(keys)
	h.events.EmitStale(c.Request.Context(), keys)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	appointment := &model.Appointment{
		Date:      req.Date,
		ClinicID:  clinicID,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
	}

	stale, err := h.service.CreateAppointment(c.Request.Context(), actor, appointment)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "APPOINTMENT_CREATE", appointment)

	httputil.RespondWithCreated(c, appointment)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	appointments, err := h.service.ListAppointments(c.Request.Context(), actor, clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	appointmentID, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid appointment ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	appointment, err := h.service.GetAppointment(c.Request.Context(), actor, clinicID, appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	appointmentID, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid appointment ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	stale, err := h.service.DeleteAppointment(c.Request.Context(), actor, clinicID, appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "APPOINTMENT_DELETE", gin.H{"id": appointmentID, "clinic_id": clinicID})

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
