// File: /routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"livewall-api/config"
	"livewall-api/controllers"
	"livewall-api/middleware"
	"livewall-api/realtime"
	"livewall-api/repositories"
	"livewall-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *realtime.Hub, broadcaster services.Broadcaster, media services.MediaStore, mailer services.AuditMailer) {
	feedLoc := cfg.FeedLocation()

	// Services
	store := repositories.NewPostRepository(db, cfg.StoreTimeout)
	moderationService := services.NewModerationService(store, media, broadcaster, mailer)
	feedService := services.NewFeedService(store, feedLoc)

	// Controllers
	authController := controllers.NewAuthController(cfg)
	postController := controllers.NewPostController(moderationService, feedService, feedLoc)
	streamController := controllers.NewStreamController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ResolveRole(cfg.JWTSecret))

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Live event stream (public, no backlog)
	v1.GET("/stream", streamController.Stream)

	// Post routes. Reads and submissions are public; the moderation
	// endpoints sit behind the role guards.
	posts := v1.Group("/posts")
	{
		posts.GET("/", postController.GetPosts)
		posts.POST("/", middleware.RateLimit(30, 10), postController.CreatePost)
		posts.POST("/:id/like", middleware.RateLimit(120, 30), postController.LikePost)

		posts.GET("/all", middleware.RequireModerator(), postController.GetAllPostsAdmin)
		posts.PATCH("/:id/hide", middleware.RequireModerator(), postController.ToggleHidePost)
		posts.DELETE("/:id", middleware.RequireSuperAdmin(), postController.DeletePost)
	}
}

// SetupCORS allows the browser frontend to talk to the API and the event
// stream from any origin.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Max-Age", "43200")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
