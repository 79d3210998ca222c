package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "x", Role: model.RoleEditor, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserSetRoleAndStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()
	user := createUser(t, db, "e@example.com")

	updated, err := svc.SetRole(ctx, user.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	updated, err = svc.SetStatus(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = svc.SetRole(ctx, uuid.New(), model.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestUserModerateUnbanClearsReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()
	user := createUser(t, db, "m@example.com")

	banned := true
	reason := "spam"
	updated, err := svc.Moderate(ctx, user.ID, dto.ModerationRequest{IsBanned: &banned, BanReason: &reason})
	require.NoError(t, err)
	assert.True(t, updated.IsBanned)
	require.NotNil(t, updated.BanReason)

	unbanned := false
	updated, err = svc.Moderate(ctx, user.ID, dto.ModerationRequest{IsBanned: &unbanned})
	require.NoError(t, err)
	assert.False(t, updated.IsBanned)
	assert.Nil(t, updated.BanReason)
}

func TestUserDeletionRequests(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()
	user := createUser(t, db, "d@example.com")

	reason := "leaving"
	request, err := svc.RequestDeletion(ctx, user.ID, &reason)
	require.NoError(t, err)
	assert.Equal(t, user.ID, request.UserID)

	requests, err := svc.ListDeletionRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "d@example.com", requests[0].User.Email)
}
