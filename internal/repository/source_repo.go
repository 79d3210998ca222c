package repository

import (
	"context"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SourceRepository interface {
	Create(ctx context.Context, source *model.Source) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Source, error)
	FindByName(ctx context.Context, name string) (*model.Source, error)
	FindAll(ctx context.Context) ([]*model.Source, error)
	Save(ctx context.Context, source *model.Source) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &sourceRepository{db: db}
}

func (r *sourceRepository) Create(ctx context.Context, source *model.Source) error {
	return r.db.WithContext(ctx).Create(source).Error
}

func (r *sourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Source, error) {
	var source model.Source
	if err := r.db.WithContext(ctx).First(&source, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *sourceRepository) FindByName(ctx context.Context, name string) (*model.Source, error) {
	var source model.Source
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&source).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *sourceRepository) FindAll(ctx context.Context) ([]*model.Source, error) {
	var sources []*model.Source
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *sourceRepository) Save(ctx context.Context, source *model.Source) error {
	return r.db.WithContext(ctx).Save(source).Error
}

func (r *sourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Source{}, "id = ?", id).Error
}
