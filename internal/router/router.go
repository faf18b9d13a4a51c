package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/papergen/papergen-backend/internal/config"
	"github.com/papergen/papergen-backend/internal/handler"
	"github.com/papergen/papergen-backend/internal/middleware"
	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/response"
	"github.com/papergen/papergen-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Curriculum *handler.CurriculumHandler
	School     *handler.SchoolHandler
	Question   *handler.QuestionHandler
	Paper      *handler.PaperHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally; PDF downloads are passed through.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/forgot-password", handlers.Auth.ForgotPassword)
		auth.POST("/reset-password", handlers.Auth.ResetPassword)

		// Authenticated profile route
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Teacher Group (JWT, teacher or admin role) ─────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleAdmin, model.RoleTeacher),
	)
	{
		// Curriculum taxonomy
		api.GET("/boards", handlers.Curriculum.ListBoards)
		api.POST("/boards", handlers.Curriculum.CreateBoard)
		api.GET("/boards/:boardId/subjects", handlers.Curriculum.ListSubjects)
		api.POST("/subjects", handlers.Curriculum.CreateSubject)
		api.GET("/subjects/:subjectId/chapters", handlers.Curriculum.ListChapters)
		api.POST("/chapters", handlers.Curriculum.CreateChapter)

		// School profiles
		api.GET("/schools", handlers.School.List)
		api.POST("/schools", handlers.School.Create)
		api.PUT("/schools/:id", handlers.School.Update)
		api.DELETE("/schools/:id", handlers.School.Delete)

		// Question bank
		api.GET("/questions", handlers.Question.List)
		api.GET("/questions/subjects", handlers.Question.UsedSubjects)
		api.GET("/questions/chapters", handlers.Question.UsedChapters)
		api.POST("/questions", handlers.Question.Create)
		api.POST("/questions/bulk", handlers.Question.BulkCreate)
		api.POST("/questions/import", handlers.Question.Import)
		api.PUT("/questions/:id", handlers.Question.Update)
		api.PATCH("/questions/:id/toggle", handlers.Question.Toggle)
		api.DELETE("/questions/:id", handlers.Question.Delete)

		// Papers
		api.POST("/papers/generate", handlers.Paper.Generate)
		api.POST("/papers/generate-only", handlers.Paper.GenerateOnly)
		api.GET("/papers", handlers.Paper.List)
		api.GET("/papers/:id", handlers.Paper.Get)
		api.GET("/papers/:id/download", handlers.Paper.Download)
		api.PUT("/papers/:id", handlers.Paper.Update)
		api.DELETE("/papers/:id", handlers.Paper.Delete)
	}

	// ─── 3. Admin Group (JWT + admin role) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireAdmin(),
	)
	{
		adminAPI.GET("/users", handlers.User.List)
		adminAPI.POST("/users", handlers.User.Create)
		adminAPI.PUT("/users/:id", handlers.User.Update)
		adminAPI.DELETE("/users/:id", handlers.User.Delete)
	}

	return router
}
