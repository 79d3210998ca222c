package service

import (
	"path/filepath"
	"testing"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema applied.
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

func editorIdentity() Identity {
	return Identity{UserID: uuid.New(), Role: model.RoleEditor}
}

func adminIdentity() Identity {
	return Identity{UserID: uuid.New(), Role: model.RoleAdmin}
}

// noopIndex satisfies SearchIndex for tests that do not care about search.
type noopIndex struct{}

func (noopIndex) IndexManga(*model.Manga) {}
func (noopIndex) RemoveManga(string)      {}
