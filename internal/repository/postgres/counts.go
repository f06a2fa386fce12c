package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
)

type countsRepository struct {
	BaseRepository
}

func NewCountsRepository(base BaseRepository) repository.CountsRepository {
	return &countsRepository{base}
}

func (r *countsRepository) ClinicCounts(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCounts, error) {
	query := `
		SELECT
			$1::uuid AS clinic_id,
			(SELECT COUNT(*) FROM doctors WHERE clinic_id = $1) AS doctors,
			(SELECT COUNT(*) FROM patients WHERE clinic_id = $1) AS patients,
			(SELECT COUNT(*) FROM appointments WHERE clinic_id = $1) AS appointments
	`
	var counts model.ClinicCounts
	if err := r.db.GetContext(ctx, &counts, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to get clinic counts: %w", err)
	}
	return &counts, nil
}
