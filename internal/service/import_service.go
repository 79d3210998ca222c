package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// placeholderBaseURL marks sources materialized from a manga import that
// only referenced them by name.
const placeholderBaseURL = "https://example.invalid"

// ImportService reconciles uploaded JSON arrays against the catalog. Each
// element is an independent unit: a bad record adds to the error tally and
// the loop continues. Manga units run inside one transaction each, so a
// failure mid-record cannot leave partial child state, and records committed
// earlier in the batch stay committed.
type ImportService interface {
	ImportCategories(ctx context.Context, importer Identity, items []dto.CategoryImport) *dto.ImportSummary
	ImportSources(ctx context.Context, importer Identity, items []dto.SourceImport) *dto.ImportSummary
	ImportMangas(ctx context.Context, importer Identity, items []dto.MangaImport) *dto.ImportSummary
}

type importService struct {
	porter repository.PorterRepository
	search SearchIndex
}

func NewImportService(porter repository.PorterRepository, search SearchIndex) ImportService {
	return &importService{porter: porter, search: search}
}

func (s *importService) ImportCategories(ctx context.Context, importer Identity, items []dto.CategoryImport) *dto.ImportSummary {
	summary := &dto.ImportSummary{}

	for i, item := range items {
		key := item.Slug
		if key == "" {
			key = fmt.Sprintf("record %d", i)
		}

		if item.Name == "" || item.Slug == "" {
			summary.RecordError(key, errors.New("name and slug are required"))
			continue
		}

		existing, err := s.porter.FindCategoryBySlug(ctx, item.Slug)
		switch {
		case err == nil:
			// Slug is the immutable natural key; only the name moves.
			existing.Name = item.Name
			if err := s.porter.SaveCategory(ctx, existing); err != nil {
				summary.RecordError(key, err)
				continue
			}
			summary.RecordUpdated(key)
		case errors.Is(err, gorm.ErrRecordNotFound):
			creatorID := importer.UserID
			category := &model.Category{
				Name:      item.Name,
				Slug:      item.Slug,
				CreatorID: &creatorID,
			}
			if err := s.porter.CreateCategory(ctx, category); err != nil {
				summary.RecordError(key, err)
				continue
			}
			summary.RecordCreated(key)
		default:
			summary.RecordError(key, err)
		}
	}

	return summary
}

func (s *importService) ImportSources(ctx context.Context, importer Identity, items []dto.SourceImport) *dto.ImportSummary {
	summary := &dto.ImportSummary{}

	for i, item := range items {
		key := item.Name
		if key == "" {
			key = fmt.Sprintf("record %d", i)
		}

		if item.Name == "" || item.BaseURL == "" {
			summary.RecordError(key, errors.New("name and baseUrl are required"))
			continue
		}

		existing, err := s.porter.FindSourceByName(ctx, item.Name)
		switch {
		case err == nil:
			existing.BaseURL = item.BaseURL
			if item.Description != nil {
				existing.Description = item.Description
			}
			if item.IsActive != nil {
				existing.IsActive = *item.IsActive
			}
			if err := s.porter.SaveSource(ctx, existing); err != nil {
				summary.RecordError(key, err)
				continue
			}
			summary.RecordUpdated(key)
		case errors.Is(err, gorm.ErrRecordNotFound):
			creatorID := importer.UserID
			source := &model.Source{
				Name:        item.Name,
				BaseURL:     item.BaseURL,
				Description: item.Description,
				IsActive:    true,
				CreatorID:   &creatorID,
			}
			if item.IsActive != nil {
				source.IsActive = *item.IsActive
			}
			if err := s.porter.CreateSource(ctx, source); err != nil {
				summary.RecordError(key, err)
				continue
			}
			summary.RecordCreated(key)
		default:
			summary.RecordError(key, err)
		}
	}

	return summary
}

func (s *importService) ImportMangas(ctx context.Context, importer Identity, items []dto.MangaImport) *dto.ImportSummary {
	summary := &dto.ImportSummary{}

	for i, item := range items {
		key := item.Slug
		if key == "" {
			key = fmt.Sprintf("record %d", i)
		}

		// Reject before the transaction opens.
		if item.Slug == "" || item.Title == "" {
			summary.RecordError(key, errors.New("title and slug are required"))
			continue
		}

		var (
			created bool
			synced  *model.Manga
		)
		err := s.porter.RunInTransaction(ctx, func(tx repository.PorterRepository) error {
			var err error
			synced, created, err = s.reconcileManga(ctx, tx, importer, item)
			return err
		})
		if err != nil {
			summary.RecordError(key, err)
			continue
		}

		if created {
			summary.RecordCreated(key)
		} else {
			summary.RecordUpdated(key)
		}
		s.search.IndexManga(synced)
	}

	return summary
}

// reconcileManga is the per-manga unit. The five steps run strictly in
// sequence: each depends on identifiers produced by the previous one.
func (s *importService) reconcileManga(ctx context.Context, tx repository.PorterRepository, importer Identity, item dto.MangaImport) (*model.Manga, bool, error) {
	// 1. Resolve or create the referenced source by name.
	var sourceID *uuid.UUID
	if item.Source != nil && item.Source.Name != "" {
		source, err := tx.FindSourceByName(ctx, item.Source.Name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			creatorID := importer.UserID
			source = &model.Source{
				Name:      item.Source.Name,
				BaseURL:   placeholderBaseURL,
				IsActive:  true,
				CreatorID: &creatorID,
			}
			if err := tx.CreateSource(ctx, source); err != nil {
				return nil, false, err
			}
		} else if err != nil {
			return nil, false, err
		}
		sourceID = &source.ID
	}

	// 2. Upsert the manga by slug; the original creator survives updates.
	created := false
	manga, err := tx.FindMangaBySlug(ctx, item.Slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created = true
		creatorID := importer.UserID
		manga = &model.Manga{
			Slug:      item.Slug,
			Status:    model.StatusOngoing,
			AgeRating: model.RatingEveryone,
			CreatorID: &creatorID,
		}
	} else if err != nil {
		return nil, false, err
	}

	manga.Title = item.Title
	if item.Description != nil {
		manga.Description = item.Description
	}
	if item.Author != nil {
		manga.Author = item.Author
	}
	if item.Status != nil {
		manga.Status = model.MangaStatus(*item.Status)
	}
	if item.AgeRating != nil {
		manga.AgeRating = model.NormalizeAgeRating(*item.AgeRating)
	}
	if item.IsAdult != nil {
		manga.IsAdult = *item.IsAdult
	}
	if item.IsModerated != nil {
		manga.IsModerated = *item.IsModerated
	}
	if item.IsHidden != nil {
		manga.IsHidden = *item.IsHidden
	}
	if item.CoverURL != nil {
		manga.CoverURL = item.CoverURL
	}
	if sourceID != nil {
		manga.SourceID = sourceID
	}

	if created {
		if err := tx.CreateManga(ctx, manga); err != nil {
			return nil, false, err
		}
	} else {
		if err := tx.SaveManga(ctx, manga); err != nil {
			return nil, false, err
		}
	}

	// 3. Resolve nested categories by slug, then full-replace the set.
	if item.Categories != nil {
		categories := make([]model.Category, 0, len(item.Categories))
		for _, ref := range item.Categories {
			if ref.Slug == "" {
				return nil, false, errors.New("nested category is missing a slug")
			}
			category, err := tx.FindCategoryBySlug(ctx, ref.Slug)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				name := ref.Name
				if name == "" {
					name = ref.Slug
				}
				creatorID := importer.UserID
				category = &model.Category{
					Name:      name,
					Slug:      ref.Slug,
					CreatorID: &creatorID,
				}
				if err := tx.CreateCategory(ctx, category); err != nil {
					return nil, false, err
				}
			} else if err != nil {
				return nil, false, err
			}
			categories = append(categories, *category)
		}
		if err := tx.ReplaceMangaCategories(ctx, manga, categories); err != nil {
			return nil, false, err
		}
		manga.Categories = categories
	}

	// 4 + 5. Chapters matched by (mangaId, number); their pages full-replace.
	for _, ch := range item.Chapters {
		if ch.Number == nil {
			return nil, false, errors.New("nested chapter is missing a number")
		}

		chapter, err := tx.FindChapterByNumber(ctx, manga.ID, *ch.Number)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			creatorID := importer.UserID
			chapter = &model.Chapter{
				MangaID:   manga.ID,
				Number:    *ch.Number,
				CreatorID: &creatorID,
			}
			applyChapterImport(chapter, ch)
			if err := tx.CreateChapter(ctx, chapter); err != nil {
				return nil, false, err
			}
		} else if err != nil {
			return nil, false, err
		} else {
			applyChapterImport(chapter, ch)
			if err := tx.SaveChapter(ctx, chapter); err != nil {
				return nil, false, err
			}
		}

		if ch.Pages != nil {
			pages := make([]model.ChapterPage, 0, len(ch.Pages))
			for _, p := range ch.Pages {
				pages = append(pages, model.ChapterPage{
					PageNumber: p.PageNumber,
					ImageURL:   p.ImageURL,
				})
			}
			if err := tx.ReplaceChapterPages(ctx, chapter.ID, pages); err != nil {
				return nil, false, err
			}
		}
	}

	// 6. Upsert the stat row; absent counters default to zero.
	stat := &model.Stat{MangaID: manga.ID}
	if item.Stats != nil {
		if item.Stats.ViewsCount != nil {
			stat.ViewsCount = *item.Stats.ViewsCount
		}
		if item.Stats.LikesCount != nil {
			stat.LikesCount = *item.Stats.LikesCount
		}
		if item.Stats.FavoritesCount != nil {
			stat.FavoritesCount = *item.Stats.FavoritesCount
		}
	}
	if err := tx.UpsertStat(ctx, stat); err != nil {
		return nil, false, err
	}

	return manga, created, nil
}

func applyChapterImport(chapter *model.Chapter, ch dto.ChapterImport) {
	if ch.Title != nil {
		chapter.Title = ch.Title
	}
	if ch.Synopsis != nil {
		chapter.Synopsis = ch.Synopsis
	}
	if ch.ExternalURL != nil {
		chapter.ExternalURL = ch.ExternalURL
	}
	if ch.ReleaseDate != nil {
		chapter.ReleaseDate = ch.ReleaseDate
	}
}
