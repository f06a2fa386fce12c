package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/reference"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/internal/service/event"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type DoctorServicer interface {
	CreateDoctor(ctx context.Context, actor *model.Actor, doctor *model.Doctor) ([]string, error)
	UpdateDoctor(ctx context.Context, actor *model.Actor, doctor *model.Doctor) ([]string, error)
	GetDoctor(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) ([]string, error)
	ListDoctors(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.Doctor, error)
}

type Service struct {
	repo    repository.DoctorRepository
	clinics repository.ClinicRepository
}

func NewService(repo repository.DoctorRepository, clinics repository.ClinicRepository) *Service {
	return &Service{repo: repo, clinics: clinics}
}

// Validate checks a doctor-availability submission. Failures come back as
// one ValidationError with a message per offending field; nothing is
// persisted when it is non-nil.
//
// The weekday range is deliberately not ordered: a range may wrap the week,
// e.g. Friday (5) through Monday (1).
func Validate(d *model.Doctor) error {
	verr := apperrors.NewValidationError()

	if strings.TrimSpace(d.Name) == "" {
		verr.Add("name", "Nome é obrigatório")
	}

	if d.Speciality == "" {
		verr.Add("speciality", "Especialidade é obrigatória")
	} else if !reference.IsSpeciality(d.Speciality) {
		verr.Add("speciality", "Especialidade inválida")
	}

	if !reference.IsWeekday(d.AvailableFromWeekday) {
		verr.Add("available_from_weekday", "Dia da semana é inválido")
	}
	if !reference.IsWeekday(d.AvailableToWeekday) {
		verr.Add("available_to_weekday", "Dia da semana é inválido")
	}

	fromOK := reference.IsTimeSlot(d.AvailableFromTime)
	if !fromOK {
		verr.Add("available_from_time", "Hora é inválida")
	}
	toOK := reference.IsTimeSlot(d.AvailableToTime)
	if !toOK {
		verr.Add("available_to_time", "Hora é inválida")
	}

	// "HH:MM" compares chronologically as a string.
	if fromOK && toOK && d.AvailableFromTime >= d.AvailableToTime {
		verr.Add("available_to_time", "A hora final não pode ser anterior que a hora inicial")
	}

	if d.PriceCents <= 0 {
		verr.Add("price_cents", "Preço deve ser maior que zero")
	}

	return verr.ErrOrNil()
}

func (s *Service) CreateDoctor(ctx context.Context, actor *model.Actor, doctor *model.Doctor) ([]string, error) {
	if err := s.requireMember(ctx, actor, doctor.ClinicID); err != nil {
		return nil, err
	}

	if err := Validate(doctor); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	return []string{event.DashboardKeyForClinic(doctor.ClinicID)}, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, actor *model.Actor, doctor *model.Doctor) ([]string, error) {
	if err := s.requireMember(ctx, actor, doctor.ClinicID); err != nil {
		return nil, err
	}

	if err := Validate(doctor); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	if existing.ClinicID != doctor.ClinicID {
		return nil, apperrors.NewNotFound("doctor", nil)
	}

	doctor.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	return []string{event.DashboardKeyForClinic(doctor.ClinicID)}, nil
}

func (s *Service) GetDoctor(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) (*model.Doctor, error) {
	if err := s.requireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.ClinicID != clinicID {
		return nil, apperrors.NewNotFound("doctor", nil)
	}
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) ([]string, error) {
	doctor, err := s.GetDoctor(ctx, actor, clinicID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, doctor.ID); err != nil {
		return nil, err
	}

	return []string{event.DashboardKeyForClinic(clinicID)}, nil
}

func (s *Service) ListDoctors(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.Doctor, error) {
	if err := s.requireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	doctors, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) requireMember(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) error {
	if !actor.Valid() {
		return apperrors.NewUnauthorized(nil)
	}

	member, err := s.clinics.IsMember(ctx, clinicID, actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to check clinic membership: %w", err)
	}
	if !member {
		return &apperrors.AppError{
			Code:    apperrors.ErrForbidden,
			Message: "not a member of this clinic",
		}
	}
	return nil
}
