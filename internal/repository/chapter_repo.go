package repository

import (
	"context"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChapterRepository interface {
	Create(ctx context.Context, chapter *model.Chapter) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error)
	FindAll(ctx context.Context, offset, limit int) ([]*model.Chapter, int64, error)
	FindByManga(ctx context.Context, mangaID uuid.UUID) ([]*model.Chapter, error)
	Save(ctx context.Context, chapter *model.Chapter) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplacePages(ctx context.Context, chapterID uuid.UUID, pages []model.ChapterPage) error
	Count(ctx context.Context) (int64, error)
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *chapterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapter_pages.page_number ASC")
		}).
		First(&chapter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) FindAll(ctx context.Context, offset, limit int) ([]*model.Chapter, int64, error) {
	var chapters []*model.Chapter
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Chapter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Manga").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&chapters).Error; err != nil {
		return nil, 0, err
	}

	return chapters, total, nil
}

func (r *chapterRepository) FindByManga(ctx context.Context, mangaID uuid.UUID) ([]*model.Chapter, error) {
	var chapters []*model.Chapter
	if err := r.db.WithContext(ctx).
		Where("manga_id = ?", mangaID).
		Order("number ASC").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) Save(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Save(chapter).Error
}

func (r *chapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Pages").Delete(&model.Chapter{ID: id}).Error
}

// ReplacePages implements full-replace sync: page lists are never merged.
func (r *chapterRepository) ReplacePages(ctx context.Context, chapterID uuid.UUID, pages []model.ChapterPage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", chapterID).Delete(&model.ChapterPage{}).Error; err != nil {
			return err
		}
		for i := range pages {
			pages[i].ChapterID = chapterID
		}
		if len(pages) == 0 {
			return nil
		}
		return tx.Create(&pages).Error
	})
}

func (r *chapterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Chapter{}).Count(&count).Error
	return count, err
}
