package service

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/apperror"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MangaService interface {
	List(ctx context.Context, filter dto.MangaFilter) (*dto.Paged, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Manga, error)
	Create(ctx context.Context, identity Identity, req dto.CreateMangaRequest) (*model.Manga, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMangaRequest) (*model.Manga, error)
	Delete(ctx context.Context, identity Identity, id uuid.UUID) error
	SetCover(ctx context.Context, id uuid.UUID, r io.Reader, fileName string) (*model.Manga, error)
}

type mangaService struct {
	mangas     repository.MangaRepository
	categories repository.CategoryRepository
	sources    repository.SourceRepository
	search     SearchIndex
	images     storage.ImageStorage
}

func NewMangaService(
	mangas repository.MangaRepository,
	categories repository.CategoryRepository,
	sources repository.SourceRepository,
	search SearchIndex,
	images storage.ImageStorage,
) MangaService {
	return &mangaService{
		mangas:     mangas,
		categories: categories,
		sources:    sources,
		search:     search,
		images:     images,
	}
}

func (s *mangaService) List(ctx context.Context, filter dto.MangaFilter) (*dto.Paged, error) {
	filter.Clamp(20)

	mangas, total, err := s.mangas.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	paged := dto.NewPaged(mangas, total, filter.Page, filter.Limit)
	return &paged, nil
}

func (s *mangaService) Get(ctx context.Context, id uuid.UUID) (*model.Manga, error) {
	manga, err := s.mangas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("manga not found")
		}
		return nil, err
	}
	return manga, nil
}

func (s *mangaService) Create(ctx context.Context, identity Identity, req dto.CreateMangaRequest) (*model.Manga, error) {
	creatorID := identity.UserID
	manga := &model.Manga{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Author:      req.Author,
		Status:      model.StatusOngoing,
		AgeRating:   model.RatingEveryone,
		CoverURL:    req.CoverURL,
		CreatorID:   &creatorID,
		// Every manga carries a stat row from birth.
		Stat: &model.Stat{},
	}
	if req.Status != nil {
		manga.Status = model.MangaStatus(*req.Status)
	}
	if req.AgeRating != nil {
		manga.AgeRating = model.NormalizeAgeRating(*req.AgeRating)
	}
	if req.IsAdult != nil {
		manga.IsAdult = *req.IsAdult
	}
	if req.IsModerated != nil {
		manga.IsModerated = *req.IsModerated
	}
	if req.IsHidden != nil {
		manga.IsHidden = *req.IsHidden
	}

	if req.SourceID != nil {
		sourceID, err := s.resolveSource(ctx, *req.SourceID)
		if err != nil {
			return nil, err
		}
		manga.SourceID = sourceID
	}

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	manga.Categories = categories

	if err := s.mangas.Create(ctx, manga); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("manga slug already exists")
		}
		return nil, err
	}

	s.search.IndexManga(manga)
	return s.Get(ctx, manga.ID)
}

func (s *mangaService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMangaRequest) (*model.Manga, error) {
	manga, err := s.mangas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("manga not found")
		}
		return nil, err
	}

	if req.Title != nil {
		manga.Title = *req.Title
	}
	if req.Slug != nil {
		manga.Slug = *req.Slug
	}
	if req.Description != nil {
		manga.Description = req.Description
	}
	if req.Author != nil {
		manga.Author = req.Author
	}
	if req.Status != nil {
		manga.Status = model.MangaStatus(*req.Status)
	}
	if req.AgeRating != nil {
		manga.AgeRating = model.NormalizeAgeRating(*req.AgeRating)
	}
	if req.IsAdult != nil {
		manga.IsAdult = *req.IsAdult
	}
	if req.IsModerated != nil {
		manga.IsModerated = *req.IsModerated
	}
	if req.IsHidden != nil {
		manga.IsHidden = *req.IsHidden
	}
	if req.CoverURL != nil {
		manga.CoverURL = req.CoverURL
	}
	if req.SourceID != nil {
		sourceID, err := s.resolveSource(ctx, *req.SourceID)
		if err != nil {
			return nil, err
		}
		manga.SourceID = sourceID
	}

	// Detach loaded associations so Save only touches manga columns.
	manga.Categories = nil
	manga.Stat = nil
	manga.Source = nil

	if err := s.mangas.Save(ctx, manga); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("manga slug already exists")
		}
		return nil, err
	}

	// Category updates are full-replace, never additive.
	if req.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, *req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.mangas.ReplaceCategories(ctx, manga, categories); err != nil {
			return nil, err
		}
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.search.IndexManga(updated)
	return updated, nil
}

func (s *mangaService) Delete(ctx context.Context, identity Identity, id uuid.UUID) error {
	manga, err := s.mangas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("manga not found")
		}
		return err
	}

	if !CanDelete(identity, manga.CreatorID) {
		return apperror.Forbidden("you can only delete mangas you created")
	}

	if err := s.mangas.Delete(ctx, id); err != nil {
		return err
	}

	s.search.RemoveManga(id.String())
	return nil
}

func (s *mangaService) SetCover(ctx context.Context, id uuid.UUID, r io.Reader, fileName string) (*model.Manga, error) {
	if s.images == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "cover uploads are not configured", nil)
	}

	manga, err := s.mangas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("manga not found")
		}
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, r, "covers", fileName)
	if err != nil {
		return nil, err
	}

	old := manga.CoverURL
	manga.CoverURL = &url
	manga.Categories = nil
	manga.Stat = nil
	manga.Source = nil
	if err := s.mangas.Save(ctx, manga); err != nil {
		return nil, err
	}

	if old != nil && *old != url {
		// Best-effort cleanup of the previous cover.
		_ = s.images.DeleteImage(ctx, *old)
	}

	return s.Get(ctx, id)
}

func (s *mangaService) resolveSource(ctx context.Context, raw string) (*uuid.UUID, error) {
	sourceID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Invalid("sourceId must be a valid UUID")
	}
	if _, err := s.sources.FindByID(ctx, sourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Invalid("source does not exist")
		}
		return nil, err
	}
	return &sourceID, nil
}

func (s *mangaService) resolveCategories(ctx context.Context, ids []string) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories := make([]model.Category, 0, len(ids))
	for _, raw := range ids {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.Invalid("categoryIds must be valid UUIDs")
		}
		category, err := s.categories.FindByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Invalid("category does not exist")
			}
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, nil
}
