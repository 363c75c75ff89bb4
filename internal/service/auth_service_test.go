package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/repository"
	"github.com/tutorhub/tutor-support-api/internal/store"
	"github.com/tutorhub/tutor-support-api/pkg/config"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

func newAuthService(st *store.Store) *AuthService {
	return NewAuthService(repository.NewProfileRepository(st), config.JWTConfig{
		Secret: "test_secret",
		Issuer: "tutor-support-api",
	}, zap.NewNop())
}

func seedAccount(t *testing.T, st *store.Store, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	seedState(t, st, func(state *store.State) {
		state.Profiles = append(state.Profiles, models.Profile{
			ID:           "student-1",
			Name:         "Minh",
			Email:        email,
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
		})
	})
}

func TestAuthServiceLogin(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, "minh@example.edu", "s3cret")
	svc := newAuthService(st)

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "minh@example.edu",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, "student-1", res.User.ID)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthServiceLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, "minh@example.edu", "s3cret")
	svc := newAuthService(st)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "Minh@Example.EDU",
		Password: "s3cret",
	})
	require.NoError(t, err)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, "minh@example.edu", "s3cret")
	svc := newAuthService(st)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "minh@example.edu",
		Password: "nope",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, "minh@example.edu", "s3cret")
	svc := newAuthService(st)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@example.edu",
		Password: "s3cret",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(newTestStore(t))

	_, err := svc.ValidateToken("not-a-token")
	require.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
