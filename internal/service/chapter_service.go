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

type ChapterService interface {
	List(ctx context.Context, query dto.PageQuery) (*dto.Paged, error)
	ListByManga(ctx context.Context, mangaID uuid.UUID) ([]*model.Chapter, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Chapter, error)
	Create(ctx context.Context, identity Identity, mangaID uuid.UUID, req dto.CreateChapterRequest) (*model.Chapter, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateChapterRequest) (*model.Chapter, error)
	Delete(ctx context.Context, identity Identity, id uuid.UUID) error
}

type chapterService struct {
	chapters repository.ChapterRepository
	mangas   repository.MangaRepository
}

func NewChapterService(chapters repository.ChapterRepository, mangas repository.MangaRepository) ChapterService {
	return &chapterService{chapters: chapters, mangas: mangas}
}

func (s *chapterService) List(ctx context.Context, query dto.PageQuery) (*dto.Paged, error) {
	query.Clamp(25)

	chapters, total, err := s.chapters.FindAll(ctx, query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}

	paged := dto.NewPaged(chapters, total, query.Page, query.Limit)
	return &paged, nil
}

func (s *chapterService) ListByManga(ctx context.Context, mangaID uuid.UUID) ([]*model.Chapter, error) {
	return s.chapters.FindByManga(ctx, mangaID)
}

func (s *chapterService) Get(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	chapter, err := s.chapters.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("chapter not found")
		}
		return nil, err
	}
	return chapter, nil
}

func (s *chapterService) Create(ctx context.Context, identity Identity, mangaID uuid.UUID, req dto.CreateChapterRequest) (*model.Chapter, error) {
	if _, err := s.mangas.FindByID(ctx, mangaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("manga not found")
		}
		return nil, err
	}

	creatorID := identity.UserID
	chapter := &model.Chapter{
		MangaID:     mangaID,
		Number:      *req.Number,
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		ExternalURL: req.ExternalURL,
		ReleaseDate: req.ReleaseDate,
		CreatorID:   &creatorID,
	}
	for _, p := range req.Pages {
		chapter.Pages = append(chapter.Pages, model.ChapterPage{
			PageNumber: p.PageNumber,
			ImageURL:   p.ImageURL,
		})
	}

	if err := s.chapters.Create(ctx, chapter); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("chapter number already exists for this manga")
		}
		return nil, err
	}
	return chapter, nil
}

func (s *chapterService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateChapterRequest) (*model.Chapter, error) {
	chapter, err := s.chapters.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("chapter not found")
		}
		return nil, err
	}

	if req.Number != nil {
		chapter.Number = *req.Number
	}
	if req.Title != nil {
		chapter.Title = req.Title
	}
	if req.Synopsis != nil {
		chapter.Synopsis = req.Synopsis
	}
	if req.ExternalURL != nil {
		chapter.ExternalURL = req.ExternalURL
	}
	if req.ReleaseDate != nil {
		chapter.ReleaseDate = req.ReleaseDate
	}

	chapter.Pages = nil
	if err := s.chapters.Save(ctx, chapter); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("chapter number already exists for this manga")
		}
		return nil, err
	}

	// Page lists are full-replace, never merged.
	if req.Pages != nil {
		pages := make([]model.ChapterPage, 0, len(*req.Pages))
		for _, p := range *req.Pages {
			pages = append(pages, model.ChapterPage{
				PageNumber: p.PageNumber,
				ImageURL:   p.ImageURL,
			})
		}
		if err := s.chapters.ReplacePages(ctx, chapter.ID, pages); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *chapterService) Delete(ctx context.Context, identity Identity, id uuid.UUID) error {
	chapter, err := s.chapters.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("chapter not found")
		}
		return err
	}

	if !CanDelete(identity, chapter.CreatorID) {
		return apperror.Forbidden("you can only delete chapters you created")
	}

	return s.chapters.Delete(ctx, id)
}
