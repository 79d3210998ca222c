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

type CategoryService interface {
	List(ctx context.Context) ([]*model.Category, error)
	Create(ctx context.Context, identity Identity, req dto.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, identity Identity, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *categoryService) Create(ctx context.Context, identity Identity, req dto.CreateCategoryRequest) (*model.Category, error) {
	creatorID := identity.UserID
	category := &model.Category{
		Name:      req.Name,
		Slug:      req.Slug,
		CreatorID: &creatorID,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("category slug already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}

	if err := s.repo.Save(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("category slug already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, identity Identity, id uuid.UUID) error {
	// Existence is checked first so callers get 404 for unknown rows and
	// 403 only for rows they may not touch.
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("category not found")
		}
		return err
	}

	if !CanDelete(identity, category.CreatorID) {
		return apperror.Forbidden("you can only delete categories you created")
	}

	return s.repo.Delete(ctx, id)
}
