package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewNotFound("doctor", nil)
		assert.Equal(t, "doctor not found", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("wraps the cause", func(t *testing.T) {
		cause := errors.New("row missing")
		err := NewNotFound("doctor", cause)
		assert.Contains(t, err.Error(), "row missing")
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("code predicates see through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("loading doctor: %w", NewNotFound("doctor", nil))
		assert.True(t, IsNotFound(wrapped))
		assert.False(t, IsUnauthorized(wrapped))

		assert.True(t, IsUnauthorized(NewUnauthorized(nil)))
		assert.False(t, IsNotFound(errors.New("plain")))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("empty set is nil", func(t *testing.T) {
		verr := NewValidationError()
		assert.False(t, verr.HasErrors())
		assert.NoError(t, verr.ErrOrNil())
	})

	t.Run("collects per-field messages", func(t *testing.T) {
		verr := NewValidationError()
		verr.Add("name", "Nome é obrigatório")
		verr.Add("email", "Email inválido")

		assert.True(t, verr.HasErrors())
		assert.Error(t, verr.ErrOrNil())
		assert.Equal(t, "Nome é obrigatório", verr.FieldMessage("name"))
		assert.Empty(t, verr.FieldMessage("phone"))
		assert.Contains(t, verr.Error(), "email: Email inválido")
	})
}
