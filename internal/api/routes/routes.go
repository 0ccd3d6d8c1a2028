package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/api/handlers"
	"github.com/playscore/playscore-backend/internal/api/middleware"
	"github.com/playscore/playscore-backend/internal/config"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/internal/services"
	"github.com/playscore/playscore-backend/pkg/logger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Moderation core
	moderationStore := services.NewModerationStore(db)
	emailService := services.NewEmailService(cfg)
	notifier := services.NewModerationNotifier(emailService)
	queue := moderation.NewQueue(moderationStore)
	machine := moderation.NewStateMachine(moderationStore, notifier)

	// Initialize services
	s3Service := services.NewS3Service(cfg.S3Region, cfg.S3BucketName, cfg.S3AccessKey, cfg.S3SecretKey)
	catalogService := services.NewCatalogService(cfg)
	authService := services.NewAuthService(db, cfg.JWTSecret, emailService, cfg.BaseURL)
	gameService := services.NewGameService(db, s3Service)
	commentService := services.NewCommentService(db, queue, machine)
	ratingService := services.NewRatingService(db, queue, machine)
	adminService := services.NewAdminService(db, cfg, catalogService, emailService, queue)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	passwordHandler := handlers.NewPasswordHandler(authService)
	gameHandler := handlers.NewGameHandler(gameService, ratingService)
	commentHandler := handlers.NewCommentHandler(commentService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	moderationHandler := handlers.NewModerationHandler(queue, machine)
	adminHandler := handlers.NewAdminHandler(adminService)
	developerHandler := handlers.NewDeveloperHandler(gameService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// API routes
	api := router.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.GET("/profile", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
		auth.PUT("/profile-update", middleware.AuthMiddleware(cfg), authHandler.UpdateProfile)
	}

	// Password reset routes
	passwordGroup := api.Group("/password")
	{
		passwordGroup.POST("/forgot", passwordHandler.ForgotPassword)
		passwordGroup.GET("/validate-reset-token", passwordHandler.ValidateResetToken)
		passwordGroup.POST("/reset", passwordHandler.ResetPassword)
		passwordGroup.POST("/change", middleware.AuthMiddleware(cfg), passwordHandler.ChangePassword)
	}

	// Game catalog (public)
	games := api.Group("/games")
	{
		games.GET("/", gameHandler.GetGames)
		games.GET("/genres", gameHandler.GetGenres)
		games.GET("/:game_id", gameHandler.GetGame)
		games.GET("/:game_id/ratings", ratingHandler.GetGameReviews)
		games.GET("/:game_id/comments", commentHandler.GetGameComments)

		games.POST("/:game_id/ratings", middleware.AuthMiddleware(cfg), ratingHandler.SubmitRating)
	}

	// Ratings (authenticated)
	ratings := api.Group("/ratings", middleware.AuthMiddleware(cfg))
	{
		ratings.DELETE("/:game_id", ratingHandler.DeleteReviewText)
		ratings.POST("/:game_id/flag", ratingHandler.FlagReview)
	}

	// Comments (authenticated)
	comments := api.Group("/comments", middleware.AuthMiddleware(cfg))
	{
		comments.POST("/", commentHandler.CreateComment)
		comments.PUT("/:comment_id", commentHandler.UpdateComment)
		comments.DELETE("/:comment_id", commentHandler.DeleteComment)
		comments.POST("/:comment_id/flag", commentHandler.FlagComment)
	}

	// Developer routes
	developer := api.Group("/developer", middleware.AuthMiddleware(cfg), middleware.DeveloperOrAdmin())
	{
		developer.POST("/games", developerHandler.SubmitGame)
		developer.GET("/games", developerHandler.GetOwnSubmissions)
	}

	// Moderation routes (moderator or admin)
	mod := api.Group("/admin/moderation", middleware.AuthMiddleware(cfg), middleware.ModeratorOrAdmin())
	{
		mod.GET("/", moderationHandler.GetFeed)
		mod.GET("/counts", moderationHandler.GetCounts)
		mod.GET("/:item_id", moderationHandler.GetItem)
		mod.POST("/batch", moderationHandler.BatchModerate)
		mod.POST("/:item_id", moderationHandler.ModerateItem)
		mod.DELETE("/:item_id", moderationHandler.DeleteItem)
	}

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)

		// Game submission review
		admin.GET("/submissions", adminHandler.GetPendingSubmissions)
		admin.POST("/submissions/:game_id", adminHandler.ReviewSubmission)

		// Catalog import
		admin.GET("/catalog/search", adminHandler.SearchCatalog)
		admin.POST("/catalog/import", adminHandler.ImportGame)

		// User management
		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:user_id/role", adminHandler.UpdateUserRole)
		admin.PUT("/users/:user_id/active", adminHandler.SetUserActive)
	}

	logger.Info("Routes initialized successfully")
}
