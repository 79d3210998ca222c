package repository

import (
	"path/filepath"
	"testing"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.UserDeletionRequest{},
		&model.Category{},
		&model.Source{},
		&model.Manga{},
		&model.Chapter{},
		&model.ChapterPage{},
		&model.Stat{},
		&model.GlobalSettings{},
	))
	return db
}
