package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		NewSettingsService(repository.NewSettingsRepository(db)),
		AuthConfig{
			AccessSecret:  "test_access",
			RefreshSecret: "test_refresh",
			AccessTTL:     time.Minute,
			RefreshTTL:    time.Hour,
		},
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)
	ctx := context.Background()

	user, err := auth.Register(ctx, dto.RegisterRequest{Email: "editor@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	result, err := auth.Login(ctx, dto.LoginRequest{Email: "editor@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.User.LastLogin)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)
	ctx := context.Background()

	_, err := auth.Register(ctx, dto.RegisterRequest{Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, dto.RegisterRequest{Email: "dup@example.com", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
}

func TestRegisterBlockedWhenRegistrationDisabled(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsService(repository.NewSettingsRepository(db))
	auth := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		settings,
		AuthConfig{AccessSecret: "a", RefreshSecret: "r"},
	)
	ctx := context.Background()

	off := false
	_, err := settings.Update(ctx, dto.UpdateSettingsRequest{AllowRegistration: &off})
	require.NoError(t, err)

	_, err = auth.Register(ctx, dto.RegisterRequest{Email: "late@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)
	ctx := context.Background()

	_, err := auth.Register(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "a@example.com", Password: "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
}

func TestLoginRejectsBannedAccount(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)
	ctx := context.Background()

	user, err := auth.Register(ctx, dto.RegisterRequest{Email: "banned@example.com", Password: "secret1"})
	require.NoError(t, err)

	user.IsBanned = true
	require.NoError(t, db.Save(user).Error)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "banned@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
}

func TestRefreshKeepsTokenStable(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)
	ctx := context.Background()

	_, err := auth.Register(ctx, dto.RegisterRequest{Email: "s@example.com", Password: "secret1"})
	require.NoError(t, err)
	login, err := auth.Login(ctx, dto.LoginRequest{Email: "s@example.com", Password: "secret1"})
	require.NoError(t, err)

	first, err := auth.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, first.AccessToken)

	// The same cookie token keeps working: refresh never rotates it.
	second, err := auth.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	var count int64
	require.NoError(t, db.Model(&model.RefreshToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)
	ctx := context.Background()

	_, err := auth.Register(ctx, dto.RegisterRequest{Email: "r@example.com", Password: "secret1"})
	require.NoError(t, err)
	login, err := auth.Login(ctx, dto.LoginRequest{Email: "r@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, login.RefreshToken))

	_, err = auth.Refresh(ctx, login.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)

	_, err := auth.Refresh(context.Background(), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))

	_, err = auth.Refresh(context.Background(), "")
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
}

func TestLogoutIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db)
	ctx := context.Background()

	assert.NoError(t, auth.Logout(ctx, "unknown"))
	assert.NoError(t, auth.Logout(ctx, ""))
}
