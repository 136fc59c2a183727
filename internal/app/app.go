package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classcast/internal/bootstrap"
	controller "classcast/internal/controller/http"
	"classcast/internal/entity"
	"classcast/internal/model"
	"classcast/internal/repo/persistent"
	"classcast/internal/thumbnail"
	"classcast/internal/usecase"
	"classcast/pkg/cache"
	"classcast/pkg/config"
	"classcast/pkg/database"
	"classcast/pkg/jwt"
	"classcast/pkg/logger"
	"classcast/pkg/middleware"
	"classcast/pkg/queue"
	"classcast/pkg/session"
	"classcast/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "classcast/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	store       storage.Storage
	jwtService  *jwt.Service
	sessions    *session.Store
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if err := db.AutoMigrate(&model.UserModel{}, &model.VideoModel{}, &model.SettingModel{}); err != nil {
		log.Error("Failed to migrate database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	var store storage.Storage
	if cfg.StorageBackend == "s3" {
		store, err = storage.NewS3Storage(cfg)
	} else {
		store, err = storage.NewLocalStorage(cfg.MediaDir)
	}
	if err != nil {
		log.Error("Failed to initialize %s storage: %v", cfg.StorageBackend, err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)
	sessions := session.NewStore(redisClient)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		store:       store,
		jwtService:  jwtService,
		sessions:    sessions,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	videoRepo := persistent.NewVideoRepository(a.db)
	settingRepo := persistent.NewSettingRepository(a.db)

	// First-run superuser account
	if err := bootstrap.Run(userRepo, settingRepo, a.cfg, a.log); err != nil {
		a.log.Error("Bootstrap failed: %v", err)
		return err
	}

	thumbnailer := thumbnail.NewFFmpeg(
		a.cfg.FFmpegPath,
		time.Duration(a.cfg.ThumbnailTimeoutSeconds)*time.Second,
		a.log,
	)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.sessions, a.log)
	catalogUseCase := usecase.NewCatalogUseCase(videoRepo, a.store, thumbnailer, a.redisClient, a.queueClient, a.cfg.MaxUploadSizeMB<<20, a.log)
	adminUseCase := usecase.NewAdminUseCase(userRepo, videoRepo, a.log)

	// Initialize HTTP handlers
	authHandler := controller.NewAuthHandler(authUseCase)
	videoHandler := controller.NewVideoHandler(catalogUseCase, a.log)
	adminHandler := controller.NewAdminHandler(adminUseCase)

	// Setup router
	r := gin.Default()
	r.MaxMultipartMemory = a.cfg.MaxUploadSizeMB << 20

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Locally stored media (videos + thumbnails); http.ServeFile handles
	// range requests for the player
	if a.cfg.StorageBackend != "s3" {
		r.Static("/media", a.cfg.MediaDir)
	}

	api := r.Group("/api/v1")
	{
		api.POST("/register", middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute), authHandler.Register)
		api.POST("/login", middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute), authHandler.Login)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService, a.sessions))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)

			protected.GET("/videos", videoHandler.Search)
			protected.GET("/videos/:id", videoHandler.Watch)
			protected.GET("/users/:id/videos", videoHandler.ListByOwner)
			protected.POST("/videos", controller.RequireAction(entity.ActionUpload), videoHandler.Upload)
			protected.DELETE("/videos/:id", controller.RequireAction(entity.ActionDelete), videoHandler.Delete)

			admin := protected.Group("/admin")
			admin.Use(controller.RequireAction(entity.ActionManageUsers))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/stats", adminHandler.Stats)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
				admin.PUT("/users/:id/role", adminHandler.ChangeUserRole)
			}
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("classcast starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("classcast exited")
	return nil
}
