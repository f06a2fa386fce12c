package model

import (
	"github.com/google/uuid"
)

// User is a staff account. Email is unique across all users.
type User struct {
	Base
	Name          string `db:"name" json:"name"`
	Email         string `db:"email" json:"email"`
	EmailVerified bool   `db:"email_verified" json:"email_verified"`
	AvatarURL     *string `db:"avatar_url" json:"avatar_url,omitempty"`
	PasswordHash  string `db:"password_hash" json:"-"`
}

// Actor is the authenticated user on whose behalf an operation runs. Core
// services take it as an explicit parameter and never read it from ambient
// state, so they stay testable without a live session subsystem.
type Actor struct {
	UserID uuid.UUID
	Email  string
}

// Valid reports whether the actor carries a usable identity.
func (a *Actor) Valid() bool {
	return a != nil && a.UserID != uuid.Nil
}
