package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/internal/service/event"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type AppointmentServicer interface {
	CreateAppointment(ctx context.Context, actor *model.Actor, appointment *model.Appointment) ([]string, error)
	GetAppointment(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) ([]string, error)
	ListAppointments(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.Appointment, error)
}

type Service struct {
	repo     repository.AppointmentRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	clinics  repository.ClinicRepository
}

func NewService(
	repo repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	clinics repository.ClinicRepository,
) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		patients: patients,
		clinics:  clinics,
	}
}

// CreateAppointment binds a doctor and a patient to a point in time. The
// schema only guarantees each foreign key resolves on its own, so tenant
// isolation is enforced here: doctor and patient must belong to the
// appointment's clinic or the mutation is rejected before any write.
func (s *Service) CreateAppointment(ctx context.Context, actor *model.Actor, appointment *model.Appointment) ([]string, error) {
	if err := s.requireMember(ctx, actor, appointment.ClinicID); err != nil {
		return nil, err
	}

	if appointment.Date.IsZero() {
		verr := apperrors.NewValidationError()
		verr.Add("date", "Data é obrigatória")
		return nil, verr
	}

	doctor, err := s.doctors.Get(ctx, appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.ClinicID != appointment.ClinicID {
		return nil, apperrors.NewBadRequest("doctor does not belong to this clinic", nil)
	}

	patient, err := s.patients.Get(ctx, appointment.PatientID)
	if err != nil {
		return nil, err
	}
	if patient.ClinicID != appointment.ClinicID {
		return nil, apperrors.NewBadRequest("patient does not belong to this clinic", nil)
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return []string{event.DashboardKeyForClinic(appointment.ClinicID)}, nil
}

func (s *Service) GetAppointment(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) (*model.Appointment, error) {
	if err := s.requireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.ClinicID != clinicID {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, actor *model.Actor, clinicID, id uuid.UUID) ([]string, error) {
	appointment, err := s.GetAppointment(ctx, actor, clinicID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, appointment.ID); err != nil {
		return nil, err
	}

	return []string{event.DashboardKeyForClinic(clinicID)}, nil
}

func (s *Service) ListAppointments(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.Appointment, error) {
	if err := s.requireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	appointments, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
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
