package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-api/internal/model"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	return a, nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return apperrors.NewNotFound("appointment", nil)
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.ClinicID == clinicID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeDoctorStore struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (r *fakeDoctorStore) Create(ctx context.Context, d *model.Doctor) error { return nil }
func (r *fakeDoctorStore) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NewNotFound("doctor", nil)
	}
	return d, nil
}
func (r *fakeDoctorStore) Update(ctx context.Context, d *model.Doctor) error { return nil }
func (r *fakeDoctorStore) Delete(ctx context.Context, id uuid.UUID) error    { return nil }
func (r *fakeDoctorStore) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	return nil, nil
}

type fakePatientStore struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *fakePatientStore) Create(ctx context.Context, p *model.Patient) error { return nil }
func (r *fakePatientStore) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return p, nil
}
func (r *fakePatientStore) Update(ctx context.Context, p *model.Patient) error { return nil }
func (r *fakePatientStore) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (r *fakePatientStore) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Patient, error) {
	return nil, nil
}

type fakeMembership struct {
	members map[uuid.UUID]map[uuid.UUID]bool
}

func (r *fakeMembership) IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error) {
	return r.members[clinicID][userID], nil
}
func (r *fakeMembership) CreateWithMember(ctx context.Context, c *model.Clinic, userID uuid.UUID) error {
	return nil
}
func (r *fakeMembership) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return nil, apperrors.NewNotFound("clinic", nil)
}
func (r *fakeMembership) Update(ctx context.Context, c *model.Clinic) error { return nil }
func (r *fakeMembership) Delete(ctx context.Context, id uuid.UUID) error    { return nil }
func (r *fakeMembership) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error) {
	return nil, nil
}
func (r *fakeMembership) ListMembers(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicMember, error) {
	return nil, nil
}
func (r *fakeMembership) AddMember(ctx context.Context, m *model.ClinicMember) error { return nil }
func (r *fakeMembership) RemoveMember(ctx context.Context, clinicID, userID uuid.UUID) error {
	return nil
}

type fixture struct {
	svc      *Service
	repo     *fakeAppointmentRepo
	clinicID uuid.UUID
	actor    *model.Actor
	doctor   *model.Doctor
	patient  *model.Patient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clinicID := uuid.New()
	actor := &model.Actor{UserID: uuid.New(), Email: "ana@example.com"}

	doctor := &model.Doctor{ClinicID: clinicID}
	doctor.ID = uuid.New()
	patient := &model.Patient{ClinicID: clinicID}
	patient.ID = uuid.New()

	repo := newFakeAppointmentRepo()
	svc := NewService(
		repo,
		&fakeDoctorStore{doctors: map[uuid.UUID]*model.Doctor{doctor.ID: doctor}},
		&fakePatientStore{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}},
		&fakeMembership{members: map[uuid.UUID]map[uuid.UUID]bool{
			clinicID: {actor.UserID: true},
		}},
	)

	return &fixture{
		svc:      svc,
		repo:     repo,
		clinicID: clinicID,
		actor:    actor,
		doctor:   doctor,
		patient:  patient,
	}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("links doctor and patient within the clinic", func(t *testing.T) {
		f := newFixture(t)

		stale, err := f.svc.CreateAppointment(ctx, f.actor, &model.Appointment{
			Date:      time.Now().Add(24 * time.Hour),
			ClinicID:  f.clinicID,
			DoctorID:  f.doctor.ID,
			PatientID: f.patient.ID,
		})
		require.NoError(t, err)
		assert.Len(t, f.repo.appointments, 1)
		require.Len(t, stale, 1)
		assert.Contains(t, stale[0], f.clinicID.String())
	})

	t.Run("rejects a doctor from another clinic", func(t *testing.T) {
		f := newFixture(t)
		f.doctor.ClinicID = uuid.New()

		_, err := f.svc.CreateAppointment(ctx, f.actor, &model.Appointment{
			Date:      time.Now().Add(24 * time.Hour),
			ClinicID:  f.clinicID,
			DoctorID:  f.doctor.ID,
			PatientID: f.patient.ID,
		})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
		assert.Empty(t, f.repo.appointments)
	})

	t.Run("rejects a patient from another clinic", func(t *testing.T) {
		f := newFixture(t)
		f.patient.ClinicID = uuid.New()

		_, err := f.svc.CreateAppointment(ctx, f.actor, &model.Appointment{
			Date:      time.Now().Add(24 * time.Hour),
			ClinicID:  f.clinicID,
			DoctorID:  f.doctor.ID,
			PatientID: f.patient.ID,
		})
		require.Error(t, err)
		assert.Empty(t, f.repo.appointments)
	})

	t.Run("missing date fails per field", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateAppointment(ctx, f.actor, &model.Appointment{
			ClinicID:  f.clinicID,
			DoctorID:  f.doctor.ID,
			PatientID: f.patient.ID,
		})
		require.Error(t, err)

		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Data é obrigatória", verr.FieldMessage("date"))
	})

	t.Run("unknown doctor is not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateAppointment(ctx, f.actor, &model.Appointment{
			Date:      time.Now().Add(24 * time.Hour),
			ClinicID:  f.clinicID,
			DoctorID:  uuid.New(),
			PatientID: f.patient.ID,
		})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		f := newFixture(t)
		outsider := &model.Actor{UserID: uuid.New(), Email: "bob@example.com"}

		_, err := f.svc.CreateAppointment(ctx, outsider, &model.Appointment{
			Date:      time.Now().Add(24 * time.Hour),
			ClinicID:  f.clinicID,
			DoctorID:  f.doctor.ID,
			PatientID: f.patient.ID,
		})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("deleting an absent appointment is an error", func(t *testing.T) {
		_, err := f.svc.DeleteAppointment(ctx, f.actor, f.clinicID, uuid.New())
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("appointment from another clinic is invisible", func(t *testing.T) {
		a := &model.Appointment{Date: time.Now(), ClinicID: uuid.New()}
		require.NoError(t, f.repo.Create(ctx, a))

		_, err := f.svc.DeleteAppointment(ctx, f.actor, f.clinicID, a.ID)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Contains(t, f.repo.appointments, a.ID)
	})
}
