package model

import (
	"github.com/google/uuid"
)

type PatientSex string

const (
	PatientSexMale   PatientSex = "male"
	PatientSexFemale PatientSex = "female"
)

// Valid reports whether s is one of the known enum values.
func (s PatientSex) Valid() bool {
	return s == PatientSexMale || s == PatientSexFemale
}

type Patient struct {
	Base
	ClinicID    uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	Name        string     `db:"name" json:"name"`
	Sex         PatientSex `db:"sex" json:"sex"`
	Email       string     `db:"email" json:"email"`
	PhoneNumber string     `db:"phone_number" json:"phone_number"`
}
