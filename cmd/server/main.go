package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boranno/University-Canteen-Management-System/config"
	"github.com/boranno/University-Canteen-Management-System/internal/app/controller"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/internal/app/service"
	"github.com/boranno/University-Canteen-Management-System/internal/db"
	"github.com/boranno/University-Canteen-Management-System/internal/middleware"
	"github.com/boranno/University-Canteen-Management-System/internal/router"
	"github.com/boranno/University-Canteen-Management-System/internal/scheduler"
	"github.com/boranno/University-Canteen-Management-System/internal/storage"
	"github.com/boranno/University-Canteen-Management-System/pkg/logger"
	"github.com/boranno/University-Canteen-Management-System/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Canteen Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it logout falls back to token expiry.
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Failed to connect to Redis, token revocation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	canteenRepo := repository.NewCanteenRepository(db.GetDB())
	menuItemRepo := repository.NewMenuItemRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	canteenService := service.NewCanteenService(canteenRepo)
	menuItemService := service.NewMenuItemService(menuItemRepo, canteenRepo)
	reviewService := service.NewReviewService(reviewRepo, userRepo, canteenRepo, menuItemRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, canteenRepo, menuItemRepo)

	// Controllers
	authController := controller.NewAuthController(authService)
	canteenController := controller.NewCanteenController(canteenService)
	menuItemController := controller.NewMenuItemController(menuItemService)
	reviewController := controller.NewReviewController(reviewService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	uploadController := controller.NewUploadController(storage.NewS3Storage(&cfg.S3))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	ratingScheduler := scheduler.NewRatingScheduler(reviewService)
	if err := ratingScheduler.Start(); err != nil {
		logger.Warn("Failed to start rating scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer ratingScheduler.Stop()

	r := router.NewRouter(
		authController,
		canteenController,
		menuItemController,
		reviewController,
		favoriteController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
