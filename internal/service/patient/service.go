package patient

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/internal/service/event"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type PatientServicer interface {
	CreatePatient(ctx context.Context, actor *model.Actor, patient *model.Patient) ([]string, error)
	UpdatePatient(ctx context.Context, actor *model.Actor, patient *model.Patient) ([]string, error)
	GetPatient(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) (*model.Patient, error)
	DeletePatient(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) ([]string, error)
	ListPatients(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.Patient, error)
}

type Service struct {
	repo    repository.PatientRepository
	clinics repository.ClinicRepository
}

func NewService(repo repository.PatientRepository, clinics repository.ClinicRepository) *Service {
	return &Service{repo: repo, clinics: clinics}
}

// Validate checks a patient submission, reporting failures per field.
func Validate(p *model.Patient) error {
	verr := apperrors.NewValidationError()

	if strings.TrimSpace(p.Name) == "" {
		verr.Add("name", "Nome é obrigatório")
	}

	if p.Sex == "" {
		verr.Add("sex", "Sexo é obrigatório")
	} else if !p.Sex.Valid() {
		verr.Add("sex", "Sexo inválido")
	}

	if p.Email == "" {
		verr.Add("email", "Email é obrigatório")
	} else if _, err := mail.ParseAddress(p.Email); err != nil {
		verr.Add("email", "Email inválido")
	}

	if strings.TrimSpace(p.PhoneNumber) == "" {
		verr.Add("phone_number", "Telefone é obrigatório")
	}

	return verr.ErrOrNil()
}

func (s *Service) CreatePatient(ctx context.Context, actor *model.Actor, patient *model.Patient) ([]string, error) {
	if err := s.requireMember(ctx, actor, patient.ClinicID); err != nil {
		return nil, err
	}

	if err := Validate(patient); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	return []string{event.DashboardKeyForClinic(patient.ClinicID)}, nil
}

func (s *Service) UpdatePatient(ctx context.Context, actor *model.Actor, patient *model.Patient) ([]string, error) {
	if err := s.requireMember(ctx, actor, patient.ClinicID); err != nil {
		return nil, err
	}

	if err := Validate(patient); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	if existing.ClinicID != patient.ClinicID {
		return nil, apperrors.NewNotFound("patient", nil)
	}

	patient.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	return []string{event.DashboardKeyForClinic(patient.ClinicID)}, nil
}

func (s *Service) GetPatient(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) (*model.Patient, error) {
	if err := s.requireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient.ClinicID != clinicID {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) ([]string, error) {
	patient, err := s.GetPatient(ctx, actor, clinicID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, patient.ID); err != nil {
		return nil, err
	}

	return []string{event.DashboardKeyForClinic(clinicID)}, nil
}

func (s *Service) ListPatients(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.Patient, error) {
	if err := s.requireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	patients, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
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
