package model

import (
	"github.com/google/uuid"
)

// ClinicCounts is the dashboard aggregate for one clinic.
type ClinicCounts struct {
	ClinicID     uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Doctors      int       `db:"doctors" json:"doctors"`
	Patients     int       `db:"patients" json:"patients"`
	Appointments int       `db:"appointments" json:"appointments"`
}
