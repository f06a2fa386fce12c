package model

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is the tenant boundary: every doctor, patient and appointment
// belongs to exactly one clinic.
type Clinic struct {
	Base
	Name string `db:"name" json:"name"`
}

// ClinicMember links a user to a clinic they may act on. Rows are
// cascade-deleted when either side is deleted.
type ClinicMember struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
