package main

import (
	"log"
	"net/http"
	"os"

	"control-tower-api/config"
	"control-tower-api/handlers"
	"control-tower-api/helper"
	"control-tower-api/middleware"
	"control-tower-api/models"
	"control-tower-api/publisher"
	"control-tower-api/repositories"
	"control-tower-api/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	videoLogRepo := repositories.NewVideoLogRepository(db)
	advertiserRepo := repositories.NewAdvertiserRepository(db)

	// Publishing gateway talks to the social platforms on our behalf
	gateway := publisher.NewGateway(
		os.Getenv("PUBLISHER_URL"),
		os.Getenv("PUBLISHER_API_KEY"),
	)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	pipelineService := services.NewPipelineService(videoRepo, videoLogRepo, articleRepo, asynqClient)
	publishService := services.NewPublishService(pipelineService, videoLogRepo, gateway, gateway, gateway)
	metricsService := services.NewMetricsService(videoRepo)
	advertiserService := services.NewAdvertiserService(advertiserRepo)

	httpHelper := &helper.HTTPHelper{}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.Helper = httpHelper
	videoHandler := handlers.NewVideoHandler(pipelineService, publishService)
	videoHandler.Helper = httpHelper
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	advertiserHandler := handlers.NewAdvertiserHandler(advertiserService)
	advertiserHandler.Helper = httpHelper

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			reviewerOnly := middleware.RequireRole(string(models.RoleReviewer), string(models.RoleAdmin))

			// Videos
			videos := protected.Group("/videos")
			{
				videos.POST("", videoHandler.CreateVideo)
				videos.GET("", videoHandler.GetVideos)
				videos.GET("/:id", videoHandler.GetVideo)
				videos.GET("/:id/logs", videoHandler.GetVideoLogs)
				videos.POST("/:id/approve-script", videoHandler.ApproveScript)
				videos.POST("/:id/publish", reviewerOnly, videoHandler.PublishVideo)
				videos.PUT("/:id/status", videoHandler.MoveStatus)
				videos.POST("/:id/retry", videoHandler.RetryVideo)
				videos.POST("/:id/reject", reviewerOnly, videoHandler.RejectVideo)
				videos.POST("/:id/cancel", videoHandler.CancelVideo)
				videos.POST("/:id/upload-to-youtube", reviewerOnly, videoHandler.UploadToYouTube)
				videos.POST("/:id/upload-to-instagram", videoHandler.PublishToInstagram)
				videos.POST("/:id/upload-to-facebook", videoHandler.PublishToFacebook)
			}

			// Metrics
			metrics := protected.Group("/metrics")
			{
				metrics.GET("/pipeline", metricsHandler.GetPipelineMetrics)
				metrics.GET("/dashboard", metricsHandler.GetDashboardStats)
			}

			// Advertisers
			advertisers := protected.Group("/advertisers")
			advertisers.Use(middleware.RequireRole(string(models.RoleAdmin)))
			{
				advertisers.POST("", advertiserHandler.CreateAdvertiser)
				advertisers.GET("", advertiserHandler.GetAdvertisers)
				advertisers.GET("/:id", advertiserHandler.GetAdvertiser)
				advertisers.PUT("/:id", advertiserHandler.UpdateAdvertiser)
				advertisers.DELETE("/:id", advertiserHandler.DeleteAdvertiser)
			}
		}

		// Public video routes (published only)
		public := v1.Group("/public")
		{
			public.GET("/videos", videoHandler.GetPublishedVideos)
			public.GET("/videos/:id", videoHandler.GetPublishedVideo)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
