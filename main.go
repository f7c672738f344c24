package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jobtatkal/backend/analysis"
	"github.com/jobtatkal/backend/auth"
	"github.com/jobtatkal/backend/config"
	_ "github.com/jobtatkal/backend/docs"
	"github.com/jobtatkal/backend/gateway"
	"github.com/jobtatkal/backend/gemini"
	"github.com/jobtatkal/backend/handlers"
	"github.com/jobtatkal/backend/models"
	"github.com/jobtatkal/backend/storage"
)

const version = "1.0.0"

// @title JobTatkal API
// @version 1.0
// @description Job board backend with AI resume analysis, job matching, applications and role-based access.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@jobtatkal.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize Firestore client
	log.Println("Initializing Firestore client...")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()
	log.Println("Firestore client initialized successfully")

	// Initialize Cloud Storage client
	log.Println("Initializing Cloud Storage client...")
	storageClient, err := storage.NewCloudStorageClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage client: %v", err)
	}
	defer storageClient.Close()
	log.Println("Cloud Storage client initialized successfully")

	// Initialize auth services
	jwtService := auth.NewJWTService(cfg)
	googleAuthService := auth.NewGoogleAuthService(cfg)

	// Initialize the completion client for the configured AI provider
	var completionClient analysis.CompletionClient
	switch cfg.AIProvider {
	case "vertex":
		log.Println("Initializing Vertex AI completion client...")
		geminiClient, err := gemini.NewClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Vertex AI client: %v", err)
		}
		defer geminiClient.Close()
		completionClient = geminiClient
	default:
		log.Println("Initializing AI gateway completion client...")
		gatewayClient, err := gateway.NewClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI gateway client: %v", err)
		}
		completionClient = gatewayClient
	}
	log.Printf("AI completion client ready (provider=%s, model=%s)", cfg.AIProvider, cfg.AIModel)

	analysisRouter := analysis.NewRouter(completionClient, cfg.MaxInputChars)

	// Create handlers
	authHandler := handlers.NewAuthHandler(firestoreClient, jwtService, googleAuthService)
	jobsHandler := handlers.NewJobsHandler(firestoreClient)
	applicationsHandler := handlers.NewApplicationsHandler(firestoreClient)
	resumesHandler := handlers.NewResumesHandler(firestoreClient, storageClient)
	analysisHandler := handlers.NewAnalysisHandler(analysisRouter, firestoreClient)
	adminHandler := handlers.NewAdminHandler(firestoreClient)
	metaHandler := handlers.NewMetaHandler(firestoreClient, version)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the web frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register routes
	router.GET("/health", metaHandler.HealthCheck)

	api := router.Group("/api")
	{
		// Auth endpoints (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/google", authHandler.GoogleLogin)
			authGroup.POST("/refresh", authHandler.RefreshToken)
		}

		// Protected auth endpoints (require authentication)
		authProtected := api.Group("/auth")
		authProtected.Use(auth.AuthMiddleware(jwtService))
		{
			authProtected.GET("/profile", authHandler.GetProfile)
			authProtected.PUT("/profile", authHandler.UpdateProfile)
		}

		// Public browsing endpoints
		api.GET("/jobs", jobsHandler.ListJobs)
		api.GET("/jobs/:id", jobsHandler.GetJob)
		api.GET("/companies", metaHandler.ListCompanies)
		api.GET("/categories", metaHandler.ListCategories)

		// AI analysis endpoint (optional auth - uses stored resume when
		// authenticated and no text is provided)
		api.POST("/ai/resume", auth.OptionalAuthMiddleware(jwtService), analysisHandler.Analyze)

		// Job seeker endpoints
		seeker := api.Group("")
		seeker.Use(auth.AuthMiddleware(jwtService))
		{
			seeker.POST("/jobs/:id/apply", applicationsHandler.Apply)
			seeker.GET("/applications", applicationsHandler.ListMine)
			seeker.POST("/resume", resumesHandler.Upload)
			seeker.GET("/resume", resumesHandler.GetLatest)
			seeker.GET("/resume/file", resumesHandler.Download)
		}

		// Recruiter endpoints
		recruiter := api.Group("/recruiter")
		recruiter.Use(auth.AuthMiddleware(jwtService), auth.RequireRole(models.RoleRecruiter, models.RoleAdmin))
		{
			recruiter.GET("/jobs", jobsHandler.ListRecruiterJobs)
			recruiter.POST("/jobs", jobsHandler.CreateJob)
			recruiter.PUT("/jobs/:id", jobsHandler.UpdateJob)
			recruiter.DELETE("/jobs/:id", jobsHandler.DeleteJob)
			recruiter.GET("/applications", applicationsHandler.ListForRecruiter)
			recruiter.PATCH("/applications/:id/status", applicationsHandler.UpdateStatus)
		}

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(auth.AuthMiddleware(jwtService), auth.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
