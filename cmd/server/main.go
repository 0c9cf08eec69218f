package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/viewtube/backend/config"
	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/cache"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/handlers"
	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/repository"
	"github.com/viewtube/backend/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Server.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{})
		log.SetLevel(logrus.DebugLevel)
	}

	// Connect to database
	db, err := database.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx, db); err != nil {
			log.WithError(err).Warn("failed to disconnect from database")
		}
	}()

	// Ensure indexes; the unique constraints back the toggle semantics
	log.Info("Ensuring database indexes...")
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Connect to Redis
	redis, err := cache.NewRedisClient(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to Redis, falling back to in-process rate limiting")
		redis = nil
	} else {
		defer redis.Close()
	}

	// Connect to object store
	store, err := storage.New(context.Background(), cfg.Minio)
	if err != nil {
		log.Fatalf("Failed to connect to object store: %v", err)
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, jwtService)
	videoHandler := handlers.NewVideoHandler(videoRepo, userRepo, store, log)
	commentHandler := handlers.NewCommentHandler(commentRepo, videoRepo)
	tweetHandler := handlers.NewTweetHandler(tweetRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo)
	playlistHandler := handlers.NewPlaylistHandler(playlistRepo, videoRepo)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionRepo)
	dashboardHandler := handlers.NewDashboardHandler(videoRepo, subscriptionRepo)
	userHandler := handlers.NewUserHandler(userRepo)

	// Initialize rate limiter for write endpoints
	rateLimiter := middleware.NewRateLimiter(cfg.API.RateLimitWritesPerSec, redis)
	rateLimiter.Cleanup()
	limited := middleware.RateLimitMiddleware(rateLimiter)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	api := router.Group("/api/v1")

	// Read routes: anonymous access allowed, viewer-relative fields
	// resolve when a valid token is present
	public := api.Group("")
	public.Use(middleware.OptionalAuth(jwtService))
	{
		public.GET("/videos", videoHandler.List)
		public.GET("/videos/:videoId", videoHandler.Get)

		public.GET("/comments/:videoId", commentHandler.List)
		public.GET("/tweets/user/:userId", tweetHandler.ListByUser)

		public.GET("/subscriptions/c/:channelId", subscriptionHandler.Subscribers)
		public.GET("/subscriptions/u/:subscriberId", subscriptionHandler.SubscribedChannels)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", authHandler.GetMe)
		protected.GET("/users/history", userHandler.WatchHistory)

		protected.POST("/videos", limited, videoHandler.Upload)
		protected.PATCH("/videos/:videoId", limited, videoHandler.Update)
		protected.DELETE("/videos/:videoId", videoHandler.Delete)
		protected.PATCH("/videos/toggle/publish/:videoId", videoHandler.TogglePublish)

		protected.POST("/comments/:videoId", limited, commentHandler.Create)
		protected.PATCH("/comments/c/:commentId", limited, commentHandler.Update)
		protected.DELETE("/comments/c/:commentId", commentHandler.Delete)

		protected.POST("/tweets", limited, tweetHandler.Create)
		protected.PATCH("/tweets/:tweetId", limited, tweetHandler.Update)
		protected.DELETE("/tweets/:tweetId", tweetHandler.Delete)

		protected.POST("/likes/toggle/v/:videoId", limited, likeHandler.ToggleVideo)
		protected.POST("/likes/toggle/c/:commentId", limited, likeHandler.ToggleComment)
		protected.POST("/likes/toggle/t/:tweetId", limited, likeHandler.ToggleTweet)
		protected.GET("/likes/videos", likeHandler.LikedVideos)

		protected.POST("/playlists", limited, playlistHandler.Create)
		protected.GET("/playlists/user/:userId", playlistHandler.ListByUser)
		protected.GET("/playlists/:playlistId", playlistHandler.Get)
		protected.PATCH("/playlists/:playlistId", playlistHandler.Update)
		protected.DELETE("/playlists/:playlistId", playlistHandler.Delete)
		protected.PATCH("/playlists/add/:videoId/:playlistId", playlistHandler.AddVideo)
		protected.PATCH("/playlists/remove/:videoId/:playlistId", playlistHandler.RemoveVideo)

		protected.POST("/subscriptions/c/:channelId", limited, subscriptionHandler.Toggle)

		protected.GET("/dashboard/stats", dashboardHandler.Stats)
		protected.GET("/dashboard/videos", dashboardHandler.Videos)
	}

	// Start server
	addr := ":" + cfg.Server.Port
	log.Infof("Starting viewtube server on %s (env: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
