package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/clinic-api/internal/model"
	pkgauth "github.com/medagenda/clinic-api/pkg/auth"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = uuid.New()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	u, ok := r.byID[id]
	if !ok {
		return apperrors.NewNotFound("user", nil)
	}
	u.EmailVerified = true
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]uuid.UUID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]uuid.UUID)}
}

func (r *fakeTokenRepo) StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	r.tokens[token] = userID
	return nil
}

func (r *fakeTokenRepo) ConsumeVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, ok := r.tokens[token]
	if !ok {
		return uuid.Nil, apperrors.NewNotFound("verification token", nil)
	}
	delete(r.tokens, token)
	return userID, nil
}

type fakeMailer struct {
	verifications []string
	welcomes      []string
}

func (m *fakeMailer) SendVerification(ctx context.Context, to string, token string) error {
	m.verifications = append(m.verifications, to)
	return nil
}

func (m *fakeMailer) SendWelcome(ctx context.Context, to string, name string) error {
	m.welcomes = append(m.welcomes, to)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeTokenRepo, *fakeMailer) {
	t.Helper()

	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	mailer := &fakeMailer{}
	log := logger.NewLogger(&logger.Config{Output: os.Stderr, Level: logger.ErrorLevel})

	svc := NewService(
		users,
		tokens,
		pkgauth.NewTokenService("test-secret", time.Hour),
		security.NewBcryptHasher(bcrypt.MinCost),
		mailer,
		log,
	)
	return svc, users, tokens, mailer
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user and sends verification", func(t *testing.T) {
		svc, users, tokens, mailer := newTestService(t)

		user, err := svc.Register(ctx, "Ana", "ana@example.com", "long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name)
		assert.False(t, user.EmailVerified)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "long-enough-password", user.PasswordHash)

		assert.Len(t, users.byID, 1)
		assert.Len(t, tokens.tokens, 1)
		assert.Equal(t, []string{"ana@example.com"}, mailer.verifications)
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		svc, users, _, _ := newTestService(t)

		_, err := svc.Register(ctx, " ", "broken", "short")
		require.Error(t, err)

		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 3)
		assert.Empty(t, users.byID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.Register(ctx, "Ana", "ana@example.com", "long-enough-password")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Outra Ana", "ana@example.com", "long-enough-password")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token the service itself accepts", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		user, err := svc.Register(ctx, "Ana", "ana@example.com", "long-enough-password")
		require.NoError(t, err)

		token, loggedIn, err := svc.Login(ctx, "ana@example.com", "long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)

		actor, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, actor.UserID)
		assert.Equal(t, "ana@example.com", actor.Email)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.Register(ctx, "Ana", "ana@example.com", "long-enough-password")
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "ana@example.com", "wrong-password")
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever-password")
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.False(t, apperrors.IsNotFound(err))
	})
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the user verified and welcomes them", func(t *testing.T) {
		svc, users, tokens, mailer := newTestService(t)

		user, err := svc.Register(ctx, "Ana", "ana@example.com", "long-enough-password")
		require.NoError(t, err)

		var token string
		for tok := range tokens.tokens {
			token = tok
		}
		require.NotEmpty(t, token)

		require.NoError(t, svc.VerifyEmail(ctx, token))
		assert.True(t, users.byID[user.ID].EmailVerified)
		assert.Equal(t, []string{"ana@example.com"}, mailer.welcomes)
	})

	t.Run("token verifies at most once", func(t *testing.T) {
		svc, _, tokens, _ := newTestService(t)

		_, err := svc.Register(ctx, "Ana", "ana@example.com", "long-enough-password")
		require.NoError(t, err)

		var token string
		for tok := range tokens.tokens {
			token = tok
		}
		require.NoError(t, svc.VerifyEmail(ctx, token))

		err = svc.VerifyEmail(ctx, token)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestValidateToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.ValidateToken("garbage")
	assert.True(t, apperrors.IsUnauthorized(err))
}
