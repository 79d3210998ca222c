package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/config"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/handler"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/middleware"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Source   *handler.SourceHandler
	Manga    *handler.MangaHandler
	Chapter  *handler.ChapterHandler
	Stat     *handler.StatHandler
	Settings *handler.SettingsHandler
	User     *handler.UserHandler
	Porter   *handler.PorterHandler
}

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func New(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware, settings *service.SettingsService, rdb *redis.Client) *Server {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	started := time.Now()
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":     true,
			"uptime": time.Since(started).String(),
		})
	})

	api := engine.Group("/api")
	api.Use(middleware.RateLimit(rdb, cfg.RateLimitWindow, cfg.RateLimitMax))

	registerAuthRoutes(api, h.Auth)
	registerCatalogRoutes(api, h, auth, settings)
	registerAdminRoutes(api, h, auth)

	return &Server{engine: engine, cfg: cfg}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handler.AuthHandler) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

func registerCatalogRoutes(api *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware, settings *service.SettingsService) {
	staff := auth.RequireRoles(model.RoleAdmin, model.RoleEditor)

	protected := api.Group("")
	protected.Use(auth.RequireAuth(), middleware.Maintenance(settings))

	categories := protected.Group("/categories", staff)
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
		categories.GET("/export", h.Porter.ExportCategories)
		categories.POST("/import", h.Porter.ImportCategories)
	}

	sources := protected.Group("/sources", staff)
	{
		sources.GET("", h.Source.List)
		sources.POST("", h.Source.Create)
		sources.PUT("/:id", h.Source.Update)
		sources.DELETE("/:id", h.Source.Delete)
		sources.GET("/export", h.Porter.ExportSources)
		sources.POST("/import", h.Porter.ImportSources)
	}

	mangas := protected.Group("/mangas", staff)
	{
		mangas.GET("", h.Manga.List)
		mangas.GET("/:id", h.Manga.Get)
		mangas.POST("", h.Manga.Create)
		mangas.PUT("/:id", h.Manga.Update)
		mangas.DELETE("/:id", h.Manga.Delete)
		mangas.POST("/:id/cover", h.Manga.UploadCover)
		mangas.GET("/export", h.Porter.ExportMangas)
		mangas.POST("/import", h.Porter.ImportMangas)
	}

	chapters := protected.Group("/chapters", staff)
	{
		chapters.GET("", h.Chapter.List)
		chapters.GET("/:id", h.Chapter.Get)
		chapters.GET("/manga/:id", h.Chapter.ListByManga)
		chapters.POST("/manga/:id", h.Chapter.Create)
		chapters.PUT("/:id", h.Chapter.Update)
		chapters.DELETE("/:id", h.Chapter.Delete)
	}

	stats := protected.Group("/stats")
	{
		// Increments accept any authenticated role.
		stats.POST("/manga/:id/views", h.Stat.IncrementViews)
		stats.POST("/manga/:id/likes", h.Stat.IncrementLikes)
		stats.POST("/manga/:id/favorites", h.Stat.IncrementFavorites)
		stats.GET("/summary", auth.RequireRoles(model.RoleAdmin), h.Stat.Summary)
	}

	settingsGroup := protected.Group("/settings")
	{
		settingsGroup.GET("", staff, h.Settings.Get)
		settingsGroup.PATCH("", auth.RequireRoles(model.RoleAdmin), h.Settings.Update)
	}
}

func registerAdminRoutes(api *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	adminOnly := auth.RequireRoles(model.RoleAdmin)

	users := api.Group("/users", auth.RequireAuth())
	{
		users.GET("", adminOnly, h.User.List)
		users.PATCH("/:id/role", adminOnly, h.User.UpdateRole)
		users.PATCH("/:id/status", adminOnly, h.User.UpdateStatus)
		users.PATCH("/:id/moderation", adminOnly, h.User.Moderate)
		users.POST("/me/delete-request", h.User.RequestDeletion)
		users.GET("/deletion-requests", adminOnly, h.User.ListDeletionRequests)
	}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

// Engine exposes the router for httptest-driven tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
