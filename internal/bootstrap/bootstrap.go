package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate applies the full schema. AutoMigrate is additive only, which is
// all this service needs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}

// SeedAdminUser creates a development admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no user exists with that email. Production
// deployments are expected to create admins through the API instead.
func SeedAdminUser(ctx context.Context, users repository.UserRepository, appEnv string) error {
	if appEnv == "production" {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	zap.L().Info("seeded admin user", zap.String("email", email))
	return nil
}
