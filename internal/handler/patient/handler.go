package patient

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/handler"
	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/service/dashboard"
	"github.com/medagenda/clinic-api/internal/service/event"
	patientService "github.com/medagenda/clinic-api/internal/service/patient"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

type Handler struct {
	service patientService.PatientServicer
	views   dashboard.DashboardServicer
	events  event.Emitter
}

func NewHandler(service patientService.PatientServicer, views dashboard.DashboardServicer, events event.Emitter) *Handler {
	return &Handler{service: service, views: views, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/clinics/:id/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:patientId", h.GetPatient)
		patients.PUT("/:patientId", h.UpdatePatient)
		patients.DELETE("/:patientId", h.DeletePatient)
	}
}

type upsertPatientRequest struct {
	Name        string `json:"name"`
	Sex         string `json:"sex"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (r *upsertPatientRequest) toModel(clinicID uuid.UUID) *model.Patient {
	return &model.Patient{
		ClinicID:    clinicID,
		Name:        r.Name,
		Sex:         model.PatientSex(r.Sex),
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}

func (h *Handler) applyStale(c *gin.Context, keys []string) {
	h.views.Invalidate(keys)
	h.events.EmitStale(c.Request.Context(), keys)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	var req upsertPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	patient := req.toModel(clinicID)

	stale, err := h.service.CreatePatient(c.Request.Context(), actor, patient)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "PATIENT_CREATE", patient)

	httputil.RespondWithCreated(c, patient)
}

func (h *Handler) ListPatients(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	patients, err := h.service.ListPatients(c.Request.Context(), actor, clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid patient ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	patient, err := h.service.GetPatient(c.Request.Context(), actor, clinicID, patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patient)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid patient ID", err))
		return
	}

	var req upsertPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid request body", err))
		return
	}

	actor := handler.ActorFromContext(c)
	patient := req.toModel(clinicID)
	patient.ID = patientID
	patient.UpdatedAt = time.Now()

	stale, err := h.service.UpdatePatient(c.Request.Context(), actor, patient)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "PATIENT_UPDATE", patient)

	httputil.RespondWithSuccess(c, patient)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid patient ID", err))
		return
	}

	actor := handler.ActorFromContext(c)
	stale, err := h.service.DeletePatient(c.Request.Context(), actor, clinicID, patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.applyStale(c, stale)
	h.events.Emit(c.Request.Context(), "PATIENT_DELETE", gin.H{"id": patientID, "clinic_id": clinicID})

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
