package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newExportService(db *gorm.DB) ExportService {
	return NewExportService(
		repository.NewCategoryRepository(db),
		repository.NewSourceRepository(db),
		repository.NewMangaRepository(db),
	)
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	svc := newImportService(db)
	summary := svc.ImportMangas(context.Background(), editorIdentity(), []dto.MangaImport{fullMangaImport()})
	require.Equal(t, 1, summary.Created)
}

func TestExportCategoriesJSON(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := newExportService(db)

	export, err := svc.ExportCategories(context.Background(), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "categories.json", export.FileName)
	assert.Equal(t, "application/json", export.ContentType)

	var categories []model.Category
	require.NoError(t, json.Unmarshal(export.Data, &categories))
	assert.Len(t, categories, 2)
}

func TestExportSourcesCSV(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := newExportService(db)

	export, err := svc.ExportSources(context.Background(), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "sources.csv", export.FileName)
	assert.Equal(t, "text/csv", export.ContentType)

	rows, err := csv.NewReader(strings.NewReader(string(export.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "baseUrl", "isActive", "createdAt"}, rows[0])
	assert.Equal(t, "MangaPlus", rows[1][0])
}

func TestExportMangasJSONNestsGraph(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := newExportService(db)

	export, err := svc.ExportMangas(context.Background(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "mangas_metadata.json", export.FileName)

	var mangas []model.Manga
	require.NoError(t, json.Unmarshal(export.Data, &mangas))
	require.Len(t, mangas, 1)

	assert.Len(t, mangas[0].Categories, 2)
	assert.Len(t, mangas[0].Chapters, 2)
	require.NotNil(t, mangas[0].Stat)
	assert.Equal(t, int64(42), mangas[0].Stat.ViewsCount)
	require.NotNil(t, mangas[0].Source)
	// Chapter pages ride along inside their chapter.
	assert.Len(t, mangas[0].Chapters[0].Pages, 2)
}

func TestExportMangasCSVFlatColumns(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := newExportService(db)

	export, err := svc.ExportMangas(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "mangas_metadata.csv", export.FileName)

	rows, err := csv.NewReader(strings.NewReader(string(export.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "one-piece", rows[1][1])
	assert.Equal(t, "2", rows[1][6])  // chapter count
	assert.Equal(t, "42", rows[1][7]) // views
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	db := newTestDB(t)
	svc := newExportService(db)

	_, err := svc.ExportCategories(context.Background(), "xml")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestExportDefaultsToJSON(t *testing.T) {
	db := newTestDB(t)
	svc := newExportService(db)

	export, err := svc.ExportCategories(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "categories.json", export.FileName)
}
