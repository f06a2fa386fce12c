package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(base BaseRepository) repository.ClinicRepository {
	return &clinicRepository{base}
}

// CreateWithMember inserts the clinic and the creator's membership in one
// transaction. A failure on either insert rolls back both.
func (r *clinicRepository) CreateWithMember(ctx context.Context, clinic *model.Clinic, userID uuid.UUID) error {
	clinic.Touch()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		clinicQuery := `
			INSERT INTO clinics (id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, clinicQuery,
			clinic.ID,
			clinic.Name,
			clinic.CreatedAt,
			clinic.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create clinic: %w", err)
		}

		memberQuery := `
			INSERT INTO users_to_clinics (user_id, clinic_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`
		now := time.Now()
		if _, err := tx.ExecContext(ctx, memberQuery, userID, clinic.ID, now, now); err != nil {
			return fmt.Errorf("failed to create clinic membership: %w", err)
		}

		return nil
	})
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	err := r.db.GetContext(ctx, &clinic, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("clinic", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, updated_at = $2
		WHERE id = $3
	`
	clinic.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, clinic.Name, clinic.UpdatedAt, clinic.ID)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("clinic", nil)
	}
	return nil
}

// Delete removes the clinic; doctors, patients, memberships and appointments
// scoped to it go with it through ON DELETE CASCADE.
func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clinics WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("clinic", nil)
	}
	return nil
}

func (r *clinicRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM clinics c
		JOIN users_to_clinics utc ON utc.clinic_id = c.id
		WHERE utc.user_id = $1
		ORDER BY c.created_at DESC
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users_to_clinics
			WHERE clinic_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, clinicID, userID); err != nil {
		return false, fmt.Errorf("failed to check clinic membership: %w", err)
	}
	return exists, nil
}

func (r *clinicRepository) ListMembers(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicMember, error) {
	query := `
		SELECT user_id, clinic_id, created_at, updated_at
		FROM users_to_clinics
		WHERE clinic_id = $1
		ORDER BY created_at ASC
	`
	var members []*model.ClinicMember
	if err := r.db.SelectContext(ctx, &members, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list clinic members: %w", err)
	}
	return members, nil
}

func (r *clinicRepository) AddMember(ctx context.Context, member *model.ClinicMember) error {
	query := `
		INSERT INTO users_to_clinics (user_id, clinic_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	if _, err := r.db.ExecContext(ctx, query, member.UserID, member.ClinicID, member.CreatedAt, member.UpdatedAt); err != nil {
		return fmt.Errorf("failed to add clinic member: %w", err)
	}
	return nil
}

func (r *clinicRepository) RemoveMember(ctx context.Context, clinicID, userID uuid.UUID) error {
	query := `DELETE FROM users_to_clinics WHERE clinic_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, clinicID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove clinic member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("clinic member", nil)
	}
	return nil
}
