package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/socialite-app/backend/internal/handlers"
	"github.com/socialite-app/backend/internal/media"
	"github.com/socialite-app/backend/internal/middleware"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/notify"
	"github.com/socialite-app/backend/internal/realtime"
	"github.com/socialite-app/backend/internal/stores"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logger.Info("global middleware configured")
}

// SetupRoutes migrates the schema, wires the stores and registers every route.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, sink realtime.Sink, jwtSecret string, logger *zap.Logger) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Follow{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.CommentReaction{},
		&models.Share{},
		&models.SavedPost{},
		&models.Message{},
		&models.Story{},
		&models.StoryView{},
		&models.Notification{},
		&models.Presence{},
		&models.DeviceToken{},
	)
	if err != nil {
		return err
	}
	logger.Info("auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize stores ---
	dispatcher := notify.NewDispatcher(pgdb, sink, logger)
	userStore := stores.NewUserStore(pgdb)
	graphStore := stores.NewGraphStore(pgdb, dispatcher)
	contentStore := stores.NewContentStore(pgdb, dispatcher)
	feedComposer := stores.NewFeedComposer(pgdb, graphStore)
	messagingStore := stores.NewMessagingStore(pgdb, dispatcher, sink, logger)
	storyStore := stores.NewStoryStore(pgdb, graphStore)
	presenceStore := stores.NewPresenceStore(pgdb)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userStore, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtSecret))

	userHandler := handlers.NewUserHandler(userStore, graphStore, presenceStore)
	userHandler.RegisterProfileRoutes(api)

	friendshipHandler := handlers.NewFriendshipHandler(graphStore, userStore)
	friendshipHandler.RegisterFriendshipRoutes(api)

	followHandler := handlers.NewFollowHandler(graphStore)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(contentStore, userStore)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(contentStore, userStore)
	commentHandler.RegisterCommentRoutes(api)

	feedHandler := handlers.NewFeedHandler(feedComposer, contentStore, userStore)
	feedHandler.RegisterFeedRoutes(api)

	messagingHandler := handlers.NewMessagingHandler(messagingStore)
	messagingHandler.RegisterMessagingRoutes(api)

	storyHandler := handlers.NewStoryHandler(storyStore)
	storyHandler.RegisterStoryRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(dispatcher)
	notificationHandler.RegisterNotificationRoutes(api)

	realtimeHandler := handlers.NewRealtimeHandler(presenceStore, sink, logger)
	realtimeHandler.RegisterRealtimeRoutes(api)

	// Media routes need MongoDB; skip them when it is not configured.
	if mgClient != nil {
		mediaHandler := handlers.NewMediaHandler(media.NewStore(mgClient.Database("socialite")))
		mediaHandler.RegisterMediaRoutes(api)
		mediaHandler.RegisterPublicMediaRoutes(e.Group(""))
	} else {
		logger.Warn("mongodb not configured, media routes disabled")
	}

	logger.Info("all routes configured")
	return nil
}
