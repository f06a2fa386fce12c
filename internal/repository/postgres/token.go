package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medagenda/clinic-api/internal/repository"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type tokenRepository struct {
	BaseRepository
}

func NewTokenRepository(base BaseRepository) repository.TokenRepository {
	return &tokenRepository{base}
}

func (r *tokenRepository) StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO verifications (user_id, token, expires_at, created_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (user_id) DO UPDATE
			SET token = $2, expires_at = $3, used_at = NULL
		`
		_, err := tx.ExecContext(ctx, query, userID, token, expiry)
		return err
	})
}

// ConsumeVerificationToken resolves a live token to its user and marks it
// used in one transaction, so a token verifies at most once.
func (r *tokenRepository) ConsumeVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			SELECT user_id
			FROM verifications
			WHERE token = $1
			AND expires_at > NOW()
			AND used_at IS NULL
		`
		if err := tx.GetContext(ctx, &userID, query, token); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NewNotFound("verification token", err)
			}
			return fmt.Errorf("failed to look up verification token: %w", err)
		}

		update := `UPDATE verifications SET used_at = NOW() WHERE token = $1`
		if _, err := tx.ExecContext(ctx, update, token); err != nil {
			return fmt.Errorf("failed to consume verification token: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}
