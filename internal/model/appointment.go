package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment binds one clinic, one doctor and one patient to a point in
// time. The schema only guarantees each foreign key resolves; the service
// layer enforces that doctor and patient belong to the appointment's clinic.
type Appointment struct {
	Base
	Date      time.Time `db:"date" json:"date"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
}
