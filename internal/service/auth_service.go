package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/pkg/config"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

type authProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// AuthService authenticates users against the profiles collection and issues
// signed access tokens.
type AuthService struct {
	profiles authProfileRepository
	cfg      config.JWTConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(profiles authProfileRepository, cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		profiles: profiles,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login verifies credentials and returns a bearer token. Unknown emails and
// wrong passwords produce the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	profile, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		if mapRepositoryError(err) == appErrors.ErrNotFound {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, mapRepositoryError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.issueToken(profile)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	s.logger.Info("user logged in",
		zap.String("user_id", profile.ID),
		zap.String("role", string(profile.Role)))

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        profile.View(),
	}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

// CurrentUser resolves the profile behind validated claims.
func (s *AuthService) CurrentUser(ctx context.Context, claims *models.JWTClaims) (models.ProfileView, error) {
	profile, err := s.profiles.FindByID(ctx, claims.UserID)
	if err != nil {
		return models.ProfileView{}, mapRepositoryError(err)
	}
	return profile.View(), nil
}

func (s *AuthService) issueToken(profile *models.Profile) (string, int64, error) {
	now := time.Now()
	expiration := s.cfg.Expiration
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	claims := models.JWTClaims{
		UserID: profile.ID,
		Name:   profile.Name,
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(expiration.Seconds()), nil
}
