package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.Generate(userID, "ana@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, "clinic-api", claims.Issuer)
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		token, err := svc.Generate(userID, "ana@example.com")
		require.NoError(t, err)

		other := NewTokenService("other-secret", time.Hour)
		_, err = other.Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired token fails", func(t *testing.T) {
		short := NewTokenService("test-secret", -time.Minute)
		token, err := short.Generate(userID, "ana@example.com")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.Error(t, err)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.Error(t, err)
	})
}
