package reference

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-api/internal/reference"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

// Handler serves the static vocabularies the booking forms are built from.
// The data is compiled in, so there is no service layer behind it.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ref := r.Group("/reference")
	{
		ref.GET("/specialties", h.Specialties)
		ref.GET("/time-slots", h.TimeSlots)
		ref.GET("/weekdays", h.Weekdays)
	}
}

func (h *Handler) Specialties(c *gin.Context) {
	httputil.RespondWithSuccess(c, reference.Specialties())
}

func (h *Handler) TimeSlots(c *gin.Context) {
	httputil.RespondWithSuccess(c, reference.TimeSlots())
}

func (h *Handler) Weekdays(c *gin.Context) {
	httputil.RespondWithSuccess(c, reference.Weekdays())
}
