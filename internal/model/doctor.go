package model

import (
	"github.com/google/uuid"
)

// Doctor carries the recurring availability window appointments are booked
// against: a weekday range (0=Sunday..6=Saturday, wrap-around allowed, e.g.
// Friday through Monday) and a daily time range of half-hour slots.
// Price is in the smallest currency unit to avoid floating-point rounding.
type Doctor struct {
	Base
	ClinicID             uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name                 string    `db:"name" json:"name"`
	AvatarURL            *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	AvailableFromWeekday int       `db:"available_from_weekday" json:"available_from_weekday"`
	AvailableToWeekday   int       `db:"available_to_weekday" json:"available_to_weekday"`
	AvailableFromTime    string    `db:"available_from_time" json:"available_from_time"`
	AvailableToTime      string    `db:"available_to_time" json:"available_to_time"`
	Speciality           string    `db:"speciality" json:"speciality"`
	PriceCents           int64     `db:"price_cents" json:"price_cents"`
}
