package repository

import (
	"context"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PorterRepository backs the bulk import engine. RunInTransaction hands the
// callback a repository scoped to one transaction, so a manga reconciliation
// unit commits or rolls back as a whole while the rest of the batch is
// unaffected.
type PorterRepository interface {
	RunInTransaction(ctx context.Context, fn func(tx PorterRepository) error) error

	FindSourceByName(ctx context.Context, name string) (*model.Source, error)
	CreateSource(ctx context.Context, source *model.Source) error
	SaveSource(ctx context.Context, source *model.Source) error

	FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	SaveCategory(ctx context.Context, category *model.Category) error

	FindMangaBySlug(ctx context.Context, slug string) (*model.Manga, error)
	CreateManga(ctx context.Context, manga *model.Manga) error
	SaveManga(ctx context.Context, manga *model.Manga) error
	ReplaceMangaCategories(ctx context.Context, manga *model.Manga, categories []model.Category) error

	FindChapterByNumber(ctx context.Context, mangaID uuid.UUID, number float64) (*model.Chapter, error)
	CreateChapter(ctx context.Context, chapter *model.Chapter) error
	SaveChapter(ctx context.Context, chapter *model.Chapter) error
	ReplaceChapterPages(ctx context.Context, chapterID uuid.UUID, pages []model.ChapterPage) error

	UpsertStat(ctx context.Context, stat *model.Stat) error
}

type porterRepository struct {
	db *gorm.DB
}

func NewPorterRepository(db *gorm.DB) PorterRepository {
	return &porterRepository{db: db}
}

func (r *porterRepository) RunInTransaction(ctx context.Context, fn func(tx PorterRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&porterRepository{db: tx})
	})
}

func (r *porterRepository) FindSourceByName(ctx context.Context, name string) (*model.Source, error) {
	var source model.Source
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&source).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *porterRepository) CreateSource(ctx context.Context, source *model.Source) error {
	return r.db.WithContext(ctx).Create(source).Error
}

func (r *porterRepository) SaveSource(ctx context.Context, source *model.Source) error {
	return r.db.WithContext(ctx).Save(source).Error
}

func (r *porterRepository) FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *porterRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *porterRepository) SaveCategory(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *porterRepository) FindMangaBySlug(ctx context.Context, slug string) (*model.Manga, error) {
	var manga model.Manga
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&manga).Error; err != nil {
		return nil, err
	}
	return &manga, nil
}

func (r *porterRepository) CreateManga(ctx context.Context, manga *model.Manga) error {
	return r.db.WithContext(ctx).Create(manga).Error
}

func (r *porterRepository) SaveManga(ctx context.Context, manga *model.Manga) error {
	return r.db.WithContext(ctx).Save(manga).Error
}

func (r *porterRepository) ReplaceMangaCategories(ctx context.Context, manga *model.Manga, categories []model.Category) error {
	return r.db.WithContext(ctx).Model(manga).Association("Categories").Replace(categories)
}

func (r *porterRepository) FindChapterByNumber(ctx context.Context, mangaID uuid.UUID, number float64) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.WithContext(ctx).
		Where("manga_id = ? AND number = ?", mangaID, number).
		First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *porterRepository) CreateChapter(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *porterRepository) SaveChapter(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Save(chapter).Error
}

func (r *porterRepository) ReplaceChapterPages(ctx context.Context, chapterID uuid.UUID, pages []model.ChapterPage) error {
	if err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Delete(&model.ChapterPage{}).Error; err != nil {
		return err
	}
	if len(pages) == 0 {
		return nil
	}
	for i := range pages {
		pages[i].ChapterID = chapterID
	}
	return r.db.WithContext(ctx).Create(&pages).Error
}

func (r *porterRepository) UpsertStat(ctx context.Context, stat *model.Stat) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "manga_id"}},
		UpdateAll: true,
	}).Create(stat).Error
}
