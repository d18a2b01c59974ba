package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/minseo-lab/daon/backend/internal/handlers"
	"github.com/minseo-lab/daon/backend/internal/middleware"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/notify"
	"github.com/minseo-lab/daon/backend/internal/repositories"
	"github.com/minseo-lab/daon/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// pusher may be nil when no push credentials are configured.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mongoDB *mongo.Database, pusher notify.Pusher) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
		&models.StickerPurchase{},
		&models.Report{},
		&models.Notification{},
		&models.HotPostMark{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	boardRepo := repositories.NewPostgresBoardRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	pollRepo := repositories.NewPostgresPollRepository(pgdb)
	stickerRepo := repositories.NewStickerRepository(mongoDB, pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	if err := boardRepo.SeedDefaultBoards(); err != nil {
		log.Fatalf("Failed to seed boards: %v", err)
	}

	// --- Real-time notification core ---
	registry := notify.NewRegistry()
	notifier := notify.NewWriter(notificationRepo, userRepo, postRepo, boardRepo, registry, pusher)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	portalVerifier := handlers.NewPortalVerifier(cfg.SchoolPortalURL)
	authHandler := handlers.NewAuthHandler(userRepo, portalVerifier, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	boardHandler := handlers.NewBoardHandler(boardRepo)
	boardHandler.RegisterBoardRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, boardRepo, userRepo)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, boardRepo, userRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)

	reactionHandler := handlers.NewReactionHandler(reactionRepo, postRepo, notifier)
	reactionHandler.RegisterReactionRoutes(api)

	pollHandler := handlers.NewPollHandler(pollRepo, postRepo)
	pollHandler.RegisterPollRoutes(api)

	stickerHandler := handlers.NewStickerHandler(stickerRepo)
	stickerHandler.RegisterStickerRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, registry)
	notificationHandler.RegisterNotificationRoutes(api)

	reportHandler := handlers.NewReportHandler(reportRepo)
	reportHandler.RegisterReportRoutes(api)

	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnly())
	reportHandler.RegisterAdminRoutes(admin)

	log.Println("All routes configured.")
}
