package service

import (
	"context"
	"errors"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, isActive bool) (*model.User, error)
	Moderate(ctx context.Context, id uuid.UUID, req dto.ModerationRequest) (*model.User, error)
	RequestDeletion(ctx context.Context, userID uuid.UUID, reason *string) (*model.UserDeletionRequest, error)
	ListDeletionRequests(ctx context.Context) ([]*model.UserDeletionRequest, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.FindAll(ctx)
}

func (s *userService) SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) SetStatus(ctx context.Context, id uuid.UUID, isActive bool) (*model.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = isActive
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Moderate(ctx context.Context, id uuid.UUID, req dto.ModerationRequest) (*model.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsBanned != nil {
		user.IsBanned = *req.IsBanned
		if !user.IsBanned {
			user.BanReason = nil
		}
	}
	if req.BanReason != nil {
		user.BanReason = req.BanReason
	}
	if req.AdminNote != nil {
		user.AdminNote = req.AdminNote
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) RequestDeletion(ctx context.Context, userID uuid.UUID, reason *string) (*model.UserDeletionRequest, error) {
	request := &model.UserDeletionRequest{
		UserID: userID,
		Reason: reason,
	}
	if err := s.users.CreateDeletionRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *userService) ListDeletionRequests(ctx context.Context) ([]*model.UserDeletionRequest, error) {
	return s.users.FindDeletionRequests(ctx)
}

func (s *userService) find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
