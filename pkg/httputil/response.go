package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Fields  []apperrors.FieldError `json:"fields,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 response with the created entity
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError maps application errors to HTTP status codes. Validation
// errors keep their per-field detail so clients can render targeted feedback.
func RespondWithError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, Response{
			Success: false,
			Error: &Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "validation failed",
				Fields:  validationErr.Fields,
			},
		})
		return
	}

	statusCode := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Code {
		case apperrors.ErrNotFound:
			statusCode = http.StatusNotFound
		case apperrors.ErrBadRequest:
			statusCode = http.StatusBadRequest
		case apperrors.ErrUnauthorized:
			statusCode = http.StatusUnauthorized
		case apperrors.ErrForbidden:
			statusCode = http.StatusForbidden
		case apperrors.ErrConflict:
			statusCode = http.StatusConflict
		case apperrors.ErrValidation:
			statusCode = http.StatusUnprocessableEntity
		}
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    statusCode,
			Message: message,
		},
	})
}
