package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/petcircle/backend/internal/handlers"
	"github.com/petcircle/backend/internal/middleware"
	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"github.com/petcircle/backend/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, messagingClient *messaging.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Comment{},
		&models.CommentUpvote{},
		&models.Like{},
		&models.Follow{},
		&models.Activity{},
		&models.Feedback{},
		&models.SavedPost{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("petcircle"))
	petRepo := repositories.NewPostgresPetRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	upvoteRepo := repositories.NewPostgresUpvoteRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	feedbackRepo := repositories.NewPostgresFeedbackRepository(pgdb)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Initialize Services ---
	var notifier services.Notifier = services.NoopNotifier{}
	if messagingClient != nil {
		notifier = services.NewPushNotifier(messagingClient, userRepo)
	}
	recorder := services.NewRecorder(activityRepo)
	postService := services.NewPostService(postRepo, petRepo)
	engagementService := services.NewEngagementService(
		pgdb, recorder,
		postRepo, commentRepo, upvoteRepo, likeRepo, followRepo, feedbackRepo,
		activityRepo, userRepo, notificationRepo, notifier,
	)
	feedService := services.NewFeedService(activityRepo, likeRepo, userRepo)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	paymentHandler := handlers.NewPaymentHandler(postService)
	paymentHandler.RegisterPaymentRoutes(e)
	log.Println("Payment webhook routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Pet routes
	petHandler := handlers.NewPetHandler(petRepo, userRepo)
	petHandler.RegisterPetRoutes(api)
	log.Println("Pet routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postService, postRepo, userRepo, likeRepo, savedPostRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment, upvote and feedback routes
	commentHandler := handlers.NewCommentHandler(engagementService, commentRepo, upvoteRepo, feedbackRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(engagementService, likeRepo, userRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(engagementService, followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedService, userRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Saved post routes
	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo, postRepo, userRepo)
	savedPostHandler.RegisterSavedPostRoutes(api)
	log.Println("Saved post routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
