package service

import (
	"context"
	"testing"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newImportService(db *gorm.DB) ImportService {
	return NewImportService(repository.NewPorterRepository(db), noopIndex{})
}

func ptr[T any](v T) *T { return &v }

func TestImportCategoriesUpsertBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	ctx := context.Background()
	importer := editorIdentity()

	summary := svc.ImportCategories(ctx, importer, []dto.CategoryImport{
		{Name: "Action", Slug: "action"},
		{Name: "Drama", Slug: "drama"},
	})
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Updated)

	// Re-import with a renamed entry: matched by slug, name updated.
	summary = svc.ImportCategories(ctx, importer, []dto.CategoryImport{
		{Name: "Action & Adventure", Slug: "action"},
	})
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 1, summary.Updated)

	var category model.Category
	require.NoError(t, db.First(&category, "slug = ?", "action").Error)
	assert.Equal(t, "Action & Adventure", category.Name)
}

func TestImportCategoriesBadRecordDoesNotAbortBatch(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	summary := svc.ImportCategories(context.Background(), editorIdentity(), []dto.CategoryImport{
		{Name: "", Slug: "missing-name"},
		{Name: "Valid", Slug: "valid"},
	})

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Errors)

	var count int64
	require.NoError(t, db.Model(&model.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestImportSourcesUpsertByName(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	ctx := context.Background()

	summary := svc.ImportSources(ctx, editorIdentity(), []dto.SourceImport{
		{Name: "MangaDex", BaseURL: "https://mangadex.org"},
	})
	assert.Equal(t, 1, summary.Created)

	summary = svc.ImportSources(ctx, editorIdentity(), []dto.SourceImport{
		{Name: "MangaDex", BaseURL: "https://mangadex.example", IsActive: ptr(false)},
	})
	assert.Equal(t, 1, summary.Updated)

	var source model.Source
	require.NoError(t, db.First(&source, "name = ?", "MangaDex").Error)
	assert.Equal(t, "https://mangadex.example", source.BaseURL)
	assert.False(t, source.IsActive)
}

func TestImportSourcesCreatesInactiveSource(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	// An explicit false must reach the row on the create path, not only on
	// updates.
	summary := svc.ImportSources(context.Background(), editorIdentity(), []dto.SourceImport{
		{Name: "DeadSite", BaseURL: "https://dead.example", IsActive: ptr(false)},
	})
	require.Equal(t, 1, summary.Created)

	var source model.Source
	require.NoError(t, db.First(&source, "name = ?", "DeadSite").Error)
	assert.False(t, source.IsActive)
}

func fullMangaImport() dto.MangaImport {
	return dto.MangaImport{
		Title:     "One Piece",
		Slug:      "one-piece",
		Author:    ptr("Eiichiro Oda"),
		Status:    ptr("ongoing"),
		AgeRating: ptr("13+"),
		Source:    &dto.SourceRef{Name: "MangaPlus"},
		Categories: []dto.CategoryRef{
			{Name: "Shounen", Slug: "shounen"},
			{Name: "Adventure", Slug: "adventure"},
		},
		Chapters: []dto.ChapterImport{
			{
				Number: ptr(1.0),
				Title:  ptr("Romance Dawn"),
				Pages: []dto.PageImport{
					{PageNumber: 1, ImageURL: "https://img.example/1.webp"},
					{PageNumber: 2, ImageURL: "https://img.example/2.webp"},
				},
			},
			{Number: ptr(1.5), Title: ptr("Omake")},
		},
		Stats: &dto.StatImport{ViewsCount: ptr(int64(42))},
	}
}

func TestImportMangasCreatesFullGraph(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	importer := editorIdentity()

	summary := svc.ImportMangas(context.Background(), importer, []dto.MangaImport{fullMangaImport()})
	require.Equal(t, 1, summary.Created, "results: %+v", summary.Results)

	var manga model.Manga
	require.NoError(t, db.Preload("Categories").Preload("Stat").Preload("Source").
		First(&manga, "slug = ?", "one-piece").Error)

	assert.Equal(t, model.RatingTeen, manga.AgeRating)
	assert.Len(t, manga.Categories, 2)
	require.NotNil(t, manga.CreatorID)
	assert.Equal(t, importer.UserID, *manga.CreatorID)

	// The source was materialized from its name with a placeholder URL.
	require.NotNil(t, manga.Source)
	assert.Equal(t, "MangaPlus", manga.Source.Name)
	assert.Equal(t, "https://example.invalid", manga.Source.BaseURL)

	require.NotNil(t, manga.Stat)
	assert.Equal(t, int64(42), manga.Stat.ViewsCount)
	assert.Equal(t, int64(0), manga.Stat.LikesCount)

	var chapters int64
	require.NoError(t, db.Model(&model.Chapter{}).Where("manga_id = ?", manga.ID).Count(&chapters).Error)
	assert.Equal(t, int64(2), chapters)

	var pages int64
	require.NoError(t, db.Model(&model.ChapterPage{}).Count(&pages).Error)
	assert.Equal(t, int64(2), pages)
}

func TestImportMangasReimportUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	importer := editorIdentity()
	ctx := context.Background()

	first := svc.ImportMangas(ctx, importer, []dto.MangaImport{fullMangaImport()})
	require.Equal(t, 1, first.Created)

	// Same slug, changed title and chapter 1 retitled: everything matches
	// in place, nothing is duplicated.
	item := fullMangaImport()
	item.Title = "ONE PIECE"
	item.Chapters[0].Title = ptr("Romance Dawn (revised)")

	second := svc.ImportMangas(ctx, importer, []dto.MangaImport{item})
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)

	var mangas, chapters int64
	require.NoError(t, db.Model(&model.Manga{}).Count(&mangas).Error)
	require.NoError(t, db.Model(&model.Chapter{}).Count(&chapters).Error)
	assert.Equal(t, int64(1), mangas)
	assert.Equal(t, int64(2), chapters)

	var chapter model.Chapter
	require.NoError(t, db.First(&chapter, "number = ?", 1.0).Error)
	require.NotNil(t, chapter.Title)
	assert.Equal(t, "Romance Dawn (revised)", *chapter.Title)
}

func TestImportMangasPreservesCreatorOnUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	ctx := context.Background()

	original := editorIdentity()
	require.Equal(t, 1, svc.ImportMangas(ctx, original, []dto.MangaImport{fullMangaImport()}).Created)

	other := editorIdentity()
	require.Equal(t, 1, svc.ImportMangas(ctx, other, []dto.MangaImport{fullMangaImport()}).Updated)

	var manga model.Manga
	require.NoError(t, db.First(&manga, "slug = ?", "one-piece").Error)
	require.NotNil(t, manga.CreatorID)
	assert.Equal(t, original.UserID, *manga.CreatorID)
}

func TestImportMangasRejectsMissingKeyBeforeTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	summary := svc.ImportMangas(context.Background(), editorIdentity(), []dto.MangaImport{
		{Title: "No Slug"},
		{Slug: "no-title"},
		fullMangaImport(),
	})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, 1, summary.Created)
}

func TestImportMangasReplacesChapterPages(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	importer := editorIdentity()
	ctx := context.Background()

	require.Equal(t, 1, svc.ImportMangas(ctx, importer, []dto.MangaImport{fullMangaImport()}).Created)

	item := fullMangaImport()
	item.Chapters[0].Pages = []dto.PageImport{
		{PageNumber: 1, ImageURL: "https://img.example/new-1.webp"},
	}
	require.Equal(t, 1, svc.ImportMangas(ctx, importer, []dto.MangaImport{item}).Updated)

	var chapter model.Chapter
	require.NoError(t, db.Preload("Pages").First(&chapter, "number = ?", 1.0).Error)
	require.Len(t, chapter.Pages, 1)
	assert.Equal(t, "https://img.example/new-1.webp", chapter.Pages[0].ImageURL)
}
