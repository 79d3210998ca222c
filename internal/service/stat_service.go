package service

import (
	"context"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/google/uuid"
)

// Summary is the admin dashboard headline block.
type Summary struct {
	Mangas     int64 `json:"mangas"`
	Chapters   int64 `json:"chapters"`
	Categories int64 `json:"categories"`
	TotalViews int64 `json:"totalViews"`
}

type StatService interface {
	IncrementViews(ctx context.Context, mangaID uuid.UUID) (*model.Stat, error)
	IncrementLikes(ctx context.Context, mangaID uuid.UUID) (*model.Stat, error)
	IncrementFavorites(ctx context.Context, mangaID uuid.UUID) (*model.Stat, error)
	Summarize(ctx context.Context) (*Summary, error)
}

type statService struct {
	stats      repository.StatRepository
	mangas     repository.MangaRepository
	chapters   repository.ChapterRepository
	categories repository.CategoryRepository
}

func NewStatService(
	stats repository.StatRepository,
	mangas repository.MangaRepository,
	chapters repository.ChapterRepository,
	categories repository.CategoryRepository,
) StatService {
	return &statService{
		stats:      stats,
		mangas:     mangas,
		chapters:   chapters,
		categories: categories,
	}
}

func (s *statService) IncrementViews(ctx context.Context, mangaID uuid.UUID) (*model.Stat, error) {
	return s.stats.Increment(ctx, mangaID, repository.StatViews)
}

func (s *statService) IncrementLikes(ctx context.Context, mangaID uuid.UUID) (*model.Stat, error) {
	return s.stats.Increment(ctx, mangaID, repository.StatLikes)
}

func (s *statService) IncrementFavorites(ctx context.Context, mangaID uuid.UUID) (*model.Stat, error) {
	return s.stats.Increment(ctx, mangaID, repository.StatFavorites)
}

func (s *statService) Summarize(ctx context.Context) (*Summary, error) {
	mangas, err := s.mangas.Count(ctx)
	if err != nil {
		return nil, err
	}
	chapters, err := s.chapters.Count(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.stats.SumViews(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Mangas:     mangas,
		Chapters:   chapters,
		Categories: categories,
		TotalViews: views,
	}, nil
}
