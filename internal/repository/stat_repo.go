package repository

import (
	"context"
	"fmt"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatColumn names a counter column eligible for atomic increments.
type StatColumn string

const (
	StatViews     StatColumn = "views_count"
	StatLikes     StatColumn = "likes_count"
	StatFavorites StatColumn = "favorites_count"
)

type StatRepository interface {
	// Increment bumps the given counter by one in a single upsert
	// statement, creating the row seeded at 1 when absent. Safe under
	// concurrent calls: there is no read-then-write window.
	Increment(ctx context.Context, mangaID uuid.UUID, column StatColumn) (*model.Stat, error)
	SumViews(ctx context.Context) (int64, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) Increment(ctx context.Context, mangaID uuid.UUID, column StatColumn) (*model.Stat, error) {
	stat := model.Stat{MangaID: mangaID}
	switch column {
	case StatViews:
		stat.ViewsCount = 1
	case StatLikes:
		stat.LikesCount = 1
	case StatFavorites:
		stat.FavoritesCount = 1
	default:
		return nil, fmt.Errorf("unknown stat column %q", column)
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "manga_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			string(column): gorm.Expr(string(column)+" + ?", 1),
		}),
	}).Create(&stat).Error; err != nil {
		return nil, err
	}

	var updated model.Stat
	if err := r.db.WithContext(ctx).First(&updated, "manga_id = ?", mangaID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *statRepository) SumViews(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Stat{}).
		Select("COALESCE(SUM(views_count), 0)").
		Scan(&total).Error
	return total, err
}
