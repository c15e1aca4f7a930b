package router

import (
	"github.com/boranno/University-Canteen-Management-System/config"
	"github.com/boranno/University-Canteen-Management-System/internal/app/controller"
	"github.com/boranno/University-Canteen-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController     *controller.AuthController
	canteenController  *controller.CanteenController
	menuItemController *controller.MenuItemController
	reviewController   *controller.ReviewController
	favoriteController *controller.FavoriteController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	canteenController *controller.CanteenController,
	menuItemController *controller.MenuItemController,
	reviewController *controller.ReviewController,
	favoriteController *controller.FavoriteController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		canteenController:  canteenController,
		menuItemController: menuItemController,
		reviewController:   reviewController,
		favoriteController: favoriteController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Canteen API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		canteens := v1.Group("/canteens")
		{
			canteens.GET("", r.canteenController.ListCanteens)
			canteens.GET("/:id", r.canteenController.GetCanteen)
			canteens.GET("/:id/menu-items", r.menuItemController.ListCanteenMenu)
			canteens.GET("/:id/reviews", r.reviewController.ListCanteenReviews)

			canteens.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.canteenController.CreateCanteen,
			)
			canteens.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.canteenController.UpdateCanteen,
			)
			canteens.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.canteenController.DeleteCanteen,
			)
		}

		menuItems := v1.Group("/menu-items")
		{
			menuItems.GET("", r.menuItemController.ListMenuItems)
			menuItems.GET("/:id", r.menuItemController.GetMenuItem)
			menuItems.GET("/:id/reviews", r.reviewController.ListMenuItemReviews)

			menuItems.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.menuItemController.CreateMenuItem,
			)
			menuItems.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.menuItemController.UpdateMenuItem,
			)
			menuItems.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.menuItemController.DeleteMenuItem,
			)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", r.reviewController.ListReviews)
			reviews.POST("", r.authMiddleware.Authenticate(), r.reviewController.CreateReview)
			reviews.GET("/user", r.authMiddleware.Authenticate(), r.reviewController.ListUserReviews)

			reviews.POST("/recompute",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.reviewController.Recompute,
			)
		}

		favorites := v1.Group("/favorites")
		favorites.Use(r.authMiddleware.Authenticate())
		{
			favorites.GET("", r.favoriteController.ListFavorites)
			favorites.POST("", r.favoriteController.AddFavorite)
			favorites.DELETE("", r.favoriteController.RemoveFavorite)
			favorites.GET("/check", r.favoriteController.CheckFavorite)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
