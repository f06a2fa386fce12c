package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/email"
	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/pkg/auth"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/security"
)

const verificationTokenTTL = 24 * time.Hour

type AuthServicer interface {
	Register(ctx context.Context, name, emailAddr, password string) (*model.User, error)
	Login(ctx context.Context, emailAddr, password string) (string, *model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ValidateToken(token string) (*model.Actor, error)
}

type Service struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	jwt    auth.TokenService
	hasher security.PasswordHasher
	mailer email.Service
	logger *logger.Logger
}

func NewService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	jwt auth.TokenService,
	hasher security.PasswordHasher,
	mailer email.Service,
	logger *logger.Logger,
) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		hasher: hasher,
		mailer: mailer,
		logger: logger,
	}
}

func (s *Service) Register(ctx context.Context, name, emailAddr, password string) (*model.User, error) {
	verr := apperrors.NewValidationError()
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "Nome é obrigatório")
	}
	if _, err := mail.ParseAddress(emailAddr); err != nil {
		verr.Add("email", "Email inválido")
	}
	if len(password) < security.MinPasswordLen {
		verr.Add("password", fmt.Sprintf("Senha deve ter no mínimo %d caracteres", security.MinPasswordLen))
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if existing, err := s.users.GetByEmail(ctx, emailAddr); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        emailAddr,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Verification is best-effort: the account exists either way and the
	// token can be re-issued later.
	token := uuid.New().String()
	if err := s.tokens.StoreVerificationToken(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		s.logger.Error(err, "failed to store verification token", "user_id", user.ID.String())
	} else if err := s.mailer.SendVerification(ctx, user.Email, token); err != nil {
		s.logger.Error(err, "failed to send verification email", "user_id", user.ID.String())
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, emailAddr, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", nil, apperrors.NewUnauthorized(nil)
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, apperrors.NewUnauthorized(nil)
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokens.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	if err := s.users.MarkEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	if user, err := s.users.Get(ctx, userID); err == nil {
		if err := s.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
			s.logger.Error(err, "failed to send welcome email", "user_id", userID.String())
		}
	}
	return nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.Get(ctx, id)
}

// ValidateToken resolves a bearer token to the authenticated actor the core
// services require.
func (s *Service) ValidateToken(token string) (*model.Actor, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized(err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorized(err)
	}

	return &model.Actor{UserID: userID, Email: claims.Email}, nil
}
