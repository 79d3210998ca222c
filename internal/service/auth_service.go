package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccessClaims carries the identity payload of an access token.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult bundles the freshly issued credentials. RefreshToken is the
// cookie value; it stays stable across /refresh calls.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	RefreshTTL   time.Duration
	User         *model.User
}

// RefreshResult carries only a new access token: the refresh token is never
// rotated (stable refresh token design).
type RefreshResult struct {
	AccessToken string
	User        *model.User
}

type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, input dto.LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, cookieToken string) (*RefreshResult, error)
	Logout(ctx context.Context, cookieToken string) error
}

type authService struct {
	users    repository.UserRepository
	tokens   repository.RefreshTokenRepository
	settings *SettingsService
	cfg      AuthConfig
}

func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, settings *SettingsService, cfg AuthConfig) AuthService {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &authService{users: users, tokens: tokens, settings: settings, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) (*model.User, error) {
	if s.settings != nil {
		current, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !current.AllowRegistration {
			return nil, apperror.Forbidden("registration is disabled")
		}
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := model.RoleEditor
	if input.Role != nil && model.ValidRole(*input.Role) {
		role = model.Role(*input.Role)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         role,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	if !user.IsActive || user.IsBanned {
		return nil, apperror.Forbidden("account is deactivated")
	}

	access, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh, expiresAt, err := s.issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &model.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		RefreshTTL:   s.cfg.RefreshTTL,
		User:         user,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, cookieToken string) (*RefreshResult, error) {
	if cookieToken == "" {
		return nil, apperror.Unauthorized("no refresh token")
	}

	if _, err := jwt.Parse(cookieToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.RefreshSecret), nil
	}); err != nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}

	stored, err := s.tokens.FindByToken(ctx, cookieToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid or expired refresh token")
		}
		return nil, err
	}

	if !stored.Valid(time.Now()) {
		return nil, apperror.Unauthorized("invalid or expired refresh token")
	}

	if !stored.User.IsActive || stored.User.IsBanned {
		return nil, apperror.Forbidden("account is deactivated")
	}

	// Only a new access token is minted; the refresh token stays as-is.
	access, err := s.issueAccessToken(&stored.User)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{AccessToken: access, User: &stored.User}, nil
}

// Logout is idempotent: revoking an unknown or already-revoked token still
// succeeds.
func (s *authService) Logout(ctx context.Context, cookieToken string) error {
	if cookieToken == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, cookieToken, time.Now())
}

func (s *authService) issueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.AccessSecret))
}

func (s *authService) issueRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.RefreshTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshSecret))
	return signed, expiresAt, err
}
