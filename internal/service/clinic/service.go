package clinic

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/internal/service/event"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

type ClinicServicer interface {
	CreateClinic(ctx context.Context, actor *model.Actor, name string) (*model.Clinic, []string, error)
	GetClinic(ctx context.Context, actor *model.Actor, id uuid.UUID) (*model.Clinic, error)
	UpdateClinic(ctx context.Context, actor *model.Actor, id uuid.UUID, name string) (*model.Clinic, []string, error)
	DeleteClinic(ctx context.Context, actor *model.Actor, id uuid.UUID) ([]string, error)
	ListClinics(ctx context.Context, actor *model.Actor) ([]*model.Clinic, error)
	ListMembers(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.ClinicMember, error)
	AddMember(ctx context.Context, actor *model.Actor, clinicID, userID uuid.UUID) (*model.ClinicMember, []string, error)
	RemoveMember(ctx context.Context, actor *model.Actor, clinicID, userID uuid.UUID) ([]string, error)
	RequireMember(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) error
}

type Service struct {
	repo repository.ClinicRepository
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{repo: repo}
}

// CreateClinic creates the clinic and enrolls the actor as its first member
// in a single transaction; no clinic exists without at least one member.
// It returns the view keys the caller must treat as stale.
func (s *Service) CreateClinic(ctx context.Context, actor *model.Actor, name string) (*model.Clinic, []string, error) {
	if !actor.Valid() {
		return nil, nil, apperrors.NewUnauthorized(nil)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		verr := apperrors.NewValidationError()
		verr.Add("name", "Nome é obrigatório")
		return nil, nil, verr
	}

	clinic := &model.Clinic{Name: name}
	if err := s.repo.CreateWithMember(ctx, clinic, actor.UserID); err != nil {
		return nil, nil, fmt.Errorf("failed to create clinic: %w", err)
	}

	stale := []string{
		event.DashboardKeyForUser(actor.UserID),
		event.NavKeyForUser(actor.UserID),
	}
	return clinic, stale, nil
}

func (s *Service) GetClinic(ctx context.Context, actor *model.Actor, id uuid.UUID) (*model.Clinic, error) {
	if err := s.RequireMember(ctx, actor, id); err != nil {
		return nil, err
	}
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) UpdateClinic(ctx context.Context, actor *model.Actor, id uuid.UUID, name string) (*model.Clinic, []string, error) {
	if err := s.RequireMember(ctx, actor, id); err != nil {
		return nil, nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		verr := apperrors.NewValidationError()
		verr.Add("name", "Nome é obrigatório")
		return nil, nil, verr
	}

	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	clinic.Name = name
	if err := s.repo.Update(ctx, clinic); err != nil {
		return nil, nil, fmt.Errorf("failed to update clinic: %w", err)
	}

	stale := []string{event.NavKeyForUser(actor.UserID)}
	return clinic, stale, nil
}

// DeleteClinic removes the clinic; doctors, patients, memberships and
// appointments cascade in the schema. Deleting an absent clinic is a
// referential error, not a silent no-op.
func (s *Service) DeleteClinic(ctx context.Context, actor *model.Actor, id uuid.UUID) ([]string, error) {
	if err := s.RequireMember(ctx, actor, id); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	stale := []string{
		event.DashboardKeyForClinic(id),
		event.DashboardKeyForUser(actor.UserID),
		event.NavKeyForUser(actor.UserID),
	}
	return stale, nil
}

func (s *Service) ListClinics(ctx context.Context, actor *model.Actor) ([]*model.Clinic, error) {
	if !actor.Valid() {
		return nil, apperrors.NewUnauthorized(nil)
	}
	clinics, err := s.repo.ListForUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (s *Service) ListMembers(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) ([]*model.ClinicMember, error) {
	if err := s.RequireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinic members: %w", err)
	}
	return members, nil
}

// AddMember enrolls another user into the actor's clinic. The new member's
// navigation and dashboard views go stale: their clinic list just grew.
func (s *Service) AddMember(ctx context.Context, actor *model.Actor, clinicID, userID uuid.UUID) (*model.ClinicMember, []string, error) {
	if err := s.RequireMember(ctx, actor, clinicID); err != nil {
		return nil, nil, err
	}

	already, err := s.repo.IsMember(ctx, clinicID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check clinic membership: %w", err)
	}
	if already {
		return nil, nil, apperrors.NewConflict("user is already a member of this clinic", nil)
	}

	member := &model.ClinicMember{UserID: userID, ClinicID: clinicID}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, nil, fmt.Errorf("failed to add clinic member: %w", err)
	}

	stale := []string{
		event.DashboardKeyForUser(userID),
		event.NavKeyForUser(userID),
	}
	return member, stale, nil
}

// RemoveMember drops a user's enrollment. The last member cannot be removed:
// a clinic never exists without at least one member.
func (s *Service) RemoveMember(ctx context.Context, actor *model.Actor, clinicID, userID uuid.UUID) ([]string, error) {
	if err := s.RequireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinic members: %w", err)
	}
	if len(members) == 1 && members[0].UserID == userID {
		return nil, apperrors.NewConflict("cannot remove the last member of a clinic", nil)
	}

	if err := s.repo.RemoveMember(ctx, clinicID, userID); err != nil {
		return nil, err
	}

	stale := []string{
		event.DashboardKeyForUser(userID),
		event.NavKeyForUser(userID),
	}
	return stale, nil
}

// RequireMember fails with an authorization error when the actor is missing
// and a forbidden error when the actor is not enrolled in the clinic. Every
// clinic-scoped operation goes through this check; there is no cross-clinic
// visibility.
func (s *Service) RequireMember(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) error {
	if !actor.Valid() {
		return apperrors.NewUnauthorized(nil)
	}

	member, err := s.repo.IsMember(ctx, clinicID, actor.UserID)
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
