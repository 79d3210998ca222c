package repository

import (
	"context"
	"testing"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMangas(t *testing.T, db *gorm.DB) {
	t.Helper()
	author := "Kentaro Miura"
	mangas := []*model.Manga{
		{Title: "Berserk", Slug: "berserk", Author: &author, Status: model.StatusHiatus},
		{Title: "Naruto", Slug: "naruto", Status: model.StatusFinished},
		{Title: "One Piece", Slug: "one-piece", Status: model.StatusOngoing},
	}
	for _, m := range mangas {
		require.NoError(t, db.Create(m).Error)
	}
}

func pageQuery(page, limit int) dto.PageQuery {
	q := dto.PageQuery{Page: page, Limit: limit}
	q.Clamp(20)
	return q
}

func TestMangaFindAllSearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedMangas(t, db)
	repo := NewMangaRepository(db)
	ctx := context.Background()

	mangas, total, err := repo.FindAll(ctx, dto.MangaFilter{Search: "NARU", PageQuery: pageQuery(1, 20)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mangas, 1)
	assert.Equal(t, "naruto", mangas[0].Slug)

	// The search also covers the author column.
	mangas, total, err = repo.FindAll(ctx, dto.MangaFilter{Search: "miura", PageQuery: pageQuery(1, 20)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mangas, 1)
	assert.Equal(t, "berserk", mangas[0].Slug)
}

func TestMangaFindAllStatusFilter(t *testing.T) {
	db := newTestDB(t)
	seedMangas(t, db)
	repo := NewMangaRepository(db)

	mangas, total, err := repo.FindAll(context.Background(), dto.MangaFilter{
		Status:    "finished",
		PageQuery: pageQuery(1, 20),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mangas, 1)
	assert.Equal(t, "naruto", mangas[0].Slug)
}

func TestMangaFindAllPagination(t *testing.T) {
	db := newTestDB(t)
	seedMangas(t, db)
	repo := NewMangaRepository(db)
	ctx := context.Background()

	first, total, err := repo.FindAll(ctx, dto.MangaFilter{PageQuery: pageQuery(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, first, 2)

	second, total, err := repo.FindAll(ctx, dto.MangaFilter{PageQuery: pageQuery(2, 2)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, second, 1)
}

func TestMangaFindAllCategoryFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewMangaRepository(db)
	ctx := context.Background()

	category := model.Category{Name: "Seinen", Slug: "seinen"}
	require.NoError(t, db.Create(&category).Error)

	tagged := &model.Manga{Title: "Vinland Saga", Slug: "vinland-saga", Categories: []model.Category{category}}
	require.NoError(t, db.Create(tagged).Error)
	require.NoError(t, db.Create(&model.Manga{Title: "Bleach", Slug: "bleach"}).Error)

	mangas, total, err := repo.FindAll(ctx, dto.MangaFilter{
		Category:  category.ID.String(),
		PageQuery: pageQuery(1, 20),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mangas, 1)
	assert.Equal(t, "vinland-saga", mangas[0].Slug)
}

func TestMangaDeleteCascadesChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewMangaRepository(db)
	ctx := context.Background()

	manga := &model.Manga{
		Title: "Dropped",
		Slug:  "dropped",
		Stat:  &model.Stat{ViewsCount: 9},
		Chapters: []model.Chapter{
			{Number: 1},
			{Number: 2},
		},
	}
	require.NoError(t, db.Create(manga).Error)

	require.NoError(t, repo.Delete(ctx, manga.ID))

	var chapters, stats int64
	require.NoError(t, db.Model(&model.Chapter{}).Count(&chapters).Error)
	require.NoError(t, db.Model(&model.Stat{}).Count(&stats).Error)
	assert.Equal(t, int64(0), chapters)
	assert.Equal(t, int64(0), stats)
}

func TestChapterUniquePerMangaNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewChapterRepository(db)

	manga := &model.Manga{Title: "X", Slug: "x"}
	require.NoError(t, db.Create(manga).Error)

	require.NoError(t, repo.Create(ctx, &model.Chapter{MangaID: manga.ID, Number: 1}))
	err := repo.Create(ctx, &model.Chapter{MangaID: manga.ID, Number: 1})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The same number under another manga is fine.
	other := &model.Manga{Title: "Y", Slug: "y"}
	require.NoError(t, db.Create(other).Error)
	assert.NoError(t, repo.Create(ctx, &model.Chapter{MangaID: other.ID, Number: 1}))
}
