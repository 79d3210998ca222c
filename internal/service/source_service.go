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

type SourceService interface {
	List(ctx context.Context) ([]*model.Source, error)
	Create(ctx context.Context, identity Identity, req dto.CreateSourceRequest) (*model.Source, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSourceRequest) (*model.Source, error)
	Delete(ctx context.Context, identity Identity, id uuid.UUID) error
}

type sourceService struct {
	repo repository.SourceRepository
}

func NewSourceService(repo repository.SourceRepository) SourceService {
	return &sourceService{repo: repo}
}

func (s *sourceService) List(ctx context.Context) ([]*model.Source, error) {
	return s.repo.FindAll(ctx)
}

func (s *sourceService) Create(ctx context.Context, identity Identity, req dto.CreateSourceRequest) (*model.Source, error) {
	creatorID := identity.UserID
	source := &model.Source{
		Name:        req.Name,
		BaseURL:     req.BaseURL,
		Description: req.Description,
		IsActive:    true,
		CreatorID:   &creatorID,
	}
	if req.IsActive != nil {
		source.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, source); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("source name already exists")
		}
		return nil, err
	}
	return source, nil
}

func (s *sourceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSourceRequest) (*model.Source, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("source not found")
		}
		return nil, err
	}

	if req.Name != nil {
		source.Name = *req.Name
	}
	if req.BaseURL != nil {
		source.BaseURL = *req.BaseURL
	}
	if req.Description != nil {
		source.Description = req.Description
	}
	if req.IsActive != nil {
		source.IsActive = *req.IsActive
	}

	if err := s.repo.Save(ctx, source); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("source name already exists")
		}
		return nil, err
	}
	return source, nil
}

func (s *sourceService) Delete(ctx context.Context, identity Identity, id uuid.UUID) error {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("source not found")
		}
		return err
	}

	if !CanDelete(identity, source.CreatorID) {
		return apperror.Forbidden("you can only delete sources you created")
	}

	return s.repo.Delete(ctx, id)
}
