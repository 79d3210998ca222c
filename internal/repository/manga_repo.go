package repository

import (
	"context"
	"strings"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MangaRepository interface {
	Create(ctx context.Context, manga *model.Manga) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Manga, error)
	FindBySlug(ctx context.Context, slug string) (*model.Manga, error)
	FindAll(ctx context.Context, filter dto.MangaFilter) ([]*model.Manga, int64, error)
	// FindAllFull loads every manga with source, categories, stats and
	// chapters-with-pages nested, for export.
	FindAllFull(ctx context.Context) ([]*model.Manga, error)
	Save(ctx context.Context, manga *model.Manga) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceCategories(ctx context.Context, manga *model.Manga, categories []model.Category) error
	Count(ctx context.Context) (int64, error)
}

type mangaRepository struct {
	db *gorm.DB
}

func NewMangaRepository(db *gorm.DB) MangaRepository {
	return &mangaRepository{db: db}
}

func (r *mangaRepository) Create(ctx context.Context, manga *model.Manga) error {
	return r.db.WithContext(ctx).Create(manga).Error
}

func (r *mangaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Manga, error) {
	var manga model.Manga
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Stat").
		Preload("Source").
		First(&manga, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &manga, nil
}

func (r *mangaRepository) FindBySlug(ctx context.Context, slug string) (*model.Manga, error) {
	var manga model.Manga
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&manga).Error; err != nil {
		return nil, err
	}
	return &manga, nil
}

func (r *mangaRepository) FindAll(ctx context.Context, filter dto.MangaFilter) ([]*model.Manga, int64, error) {
	var mangas []*model.Manga
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Manga{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where(
			"id IN (?)",
			r.db.Table("manga_categories").Select("manga_id").Where("category_id = ?", filter.Category),
		)
	}
	if filter.Source != "" {
		query = query.Where("source_id = ?", filter.Source)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Categories").
		Preload("Stat").
		Preload("Source").
		Order("updated_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&mangas).Error; err != nil {
		return nil, 0, err
	}

	return mangas, total, nil
}

func (r *mangaRepository) FindAllFull(ctx context.Context) ([]*model.Manga, error) {
	var mangas []*model.Manga
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Stat").
		Preload("Source").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapters.number ASC")
		}).
		Preload("Chapters.Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapter_pages.page_number ASC")
		}).
		Order("title ASC").
		Find(&mangas).Error; err != nil {
		return nil, err
	}
	return mangas, nil
}

func (r *mangaRepository) Save(ctx context.Context, manga *model.Manga) error {
	return r.db.WithContext(ctx).Save(manga).Error
}

func (r *mangaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Chapters", "Stat").Delete(&model.Manga{ID: id}).Error
}

func (r *mangaRepository) ReplaceCategories(ctx context.Context, manga *model.Manga, categories []model.Category) error {
	return r.db.WithContext(ctx).Model(manga).Association("Categories").Replace(categories)
}

func (r *mangaRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Manga{}).Count(&count).Error
	return count, err
}
