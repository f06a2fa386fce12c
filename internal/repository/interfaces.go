package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	}

	// ClinicRepository owns the clinics table and the user↔clinic
	// membership join. CreateWithMember is the only way to create a
	// clinic: both rows go through one transaction so a clinic never
	// exists without at least one member.
	ClinicRepository interface {
		CreateWithMember(ctx context.Context, clinic *model.Clinic, userID uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error)
		IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error)
		ListMembers(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicMember, error)
		AddMember(ctx context.Context, member *model.ClinicMember) error
		RemoveMember(ctx context.Context, clinicID, userID uuid.UUID) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, clinicID uuid.UUID) ([]*model.Appointment, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
	}

	// OutboxRepository stores pending notifications. ClaimPendingEvents
	// atomically moves a batch from pending to processing; a batch handed
	// to one caller is never handed to another.
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		ClaimPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	TokenRepository interface {
		StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
		ConsumeVerificationToken(ctx context.Context, token string) (uuid.UUID, error)
	}

	// CountsRepository serves the dashboard aggregates.
	CountsRepository interface {
		ClinicCounts(ctx context.Context, clinicID uuid.UUID) (*model.ClinicCounts, error)
	}
)
