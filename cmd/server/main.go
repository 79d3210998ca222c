package main

import (
	"context"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/bootstrap"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/config"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/handler"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/middleware"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/server"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/database"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/logger"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer log.Sync()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	sourceRepo := repository.NewSourceRepository(db)
	mangaRepo := repository.NewMangaRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	statRepo := repository.NewStatRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	porterRepo := repository.NewPorterRepository(db)

	if err := bootstrap.SeedAdminUser(context.Background(), userRepo, cfg.AppEnv); err != nil {
		log.Fatal("failed to seed admin user", zap.Error(err))
	}

	// Optional infrastructure: each degrades to a no-op when unconfigured.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	searchIndex := service.NewSearchIndex(meiliClient)

	images, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatal("failed to init cloudinary", zap.Error(err))
	}
	if images == nil {
		log.Warn("cloudinary not configured, cover uploads disabled")
	}

	// Services
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(userRepo, tokenRepo, settingsService, service.AuthConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
	categoryService := service.NewCategoryService(categoryRepo)
	sourceService := service.NewSourceService(sourceRepo)
	mangaService := service.NewMangaService(mangaRepo, categoryRepo, sourceRepo, searchIndex, images)
	chapterService := service.NewChapterService(chapterRepo, mangaRepo)
	statService := service.NewStatService(statRepo, mangaRepo, chapterRepo, categoryRepo)
	userService := service.NewUserService(userRepo)
	exportService := service.NewExportService(categoryRepo, sourceRepo, mangaRepo)
	importService := service.NewImportService(porterRepo, searchIndex)

	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Source:   handler.NewSourceHandler(sourceService),
		Manga:    handler.NewMangaHandler(mangaService),
		Chapter:  handler.NewChapterHandler(chapterService),
		Stat:     handler.NewStatHandler(statService),
		Settings: handler.NewSettingsHandler(settingsService),
		User:     handler.NewUserHandler(userService),
		Porter:   handler.NewPorterHandler(exportService, importService),
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	srv := server.New(cfg, handlers, authMiddleware, settingsService, rdb)

	log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := srv.Run(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
