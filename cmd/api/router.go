package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-backend/internal/shared/middleware"
	"newsroom-backend/internal/shared/response"
	"newsroom-backend/pkg/container"
)

// setupRouter build gin engine với middleware chain và toàn bộ routes.
// Trả về rate limiter để caller stop cleanup goroutine lúc shutdown.
func setupRouter(c *container.Container) (*gin.Engine, *middleware.RateLimiter) {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	rateLimiter := middleware.NewRateLimiter(c.Config.RateLimit)

	// Thứ tự quan trọng: recovery ngoài cùng, request id trước logger
	// để mọi log line có id
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		rateLimiter.Middleware(),
		middleware.Metrics(c.Metrics),
	)

	router.GET("/health", healthHandler(c))
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	authn := middleware.Authenticate(c.JWTManager, c.UserRepo)
	maybeAuthn := middleware.OptionalAuthenticate(c.JWTManager, c.UserRepo)

	v1 := router.Group("/api/v1")
	{
		// Auth
		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.UserHandler.Register)
			auth.POST("/login", c.UserHandler.Login)
			auth.POST("/refresh", c.UserHandler.RefreshToken)
		}

		// Users - profile (self) + admin management
		users := v1.Group("/users", authn)
		{
			users.GET("/me", c.UserHandler.GetProfile)
			users.PUT("/me", c.UserHandler.UpdateProfile)
			users.PUT("/me/password", c.UserHandler.ChangePassword)

			admin := users.Group("", middleware.Authorize("user", "manage"))
			{
				admin.GET("", c.UserHandler.List)
				admin.PUT("/:id/role", c.UserHandler.UpdateRole)
				admin.PUT("/:id/active", c.UserHandler.SetActive)
				admin.DELETE("/:id", c.UserHandler.Delete)
			}
		}

		// Articles - public reads với optional auth mở rộng visibility
		articles := v1.Group("/articles")
		{
			articles.GET("", maybeAuthn, c.ArticleHandler.List)
			articles.GET("/slug/:slug", maybeAuthn, c.ArticleHandler.GetBySlug)
			articles.GET("/:id", maybeAuthn, c.ArticleHandler.GetByID)
			articles.GET("/:id/comments", c.CommentHandler.ListByArticle)

			articles.POST("", authn, middleware.Authorize("article", "create"), c.ArticleHandler.Create)
			articles.PUT("/:id", authn, middleware.Authorize("article", "update"), c.ArticleHandler.Update)
			articles.PATCH("/:id/publish", authn, middleware.Authorize("article", "publish"), c.ArticleHandler.Publish)
			articles.PATCH("/:id/archive", authn, middleware.Authorize("article", "archive"), c.ArticleHandler.Archive)
			articles.DELETE("/:id", authn, middleware.Authorize("article", "delete"), c.ArticleHandler.Delete)
		}

		// Categories
		categories := v1.Group("/categories")
		{
			categories.GET("", c.CategoryHandler.List)
			categories.GET("/tree", c.CategoryHandler.Tree)
			categories.GET("/slug/:slug", c.CategoryHandler.GetBySlug)

			categories.POST("", authn, middleware.Authorize("category", "create"), c.CategoryHandler.Create)
			categories.PUT("/:id", authn, middleware.Authorize("category", "update"), c.CategoryHandler.Update)
			categories.DELETE("/:id", authn, middleware.Authorize("category", "delete"), c.CategoryHandler.Delete)
		}

		// Tags
		tags := v1.Group("/tags")
		{
			tags.GET("", c.TagHandler.List)
			tags.GET("/slug/:slug", c.TagHandler.GetBySlug)

			tags.POST("", authn, middleware.Authorize("tag", "create"), c.TagHandler.Create)
			tags.PUT("/:id", authn, middleware.Authorize("tag", "update"), c.TagHandler.Update)
			tags.DELETE("/:id", authn, middleware.Authorize("tag", "delete"), c.TagHandler.Delete)
		}

		// Comments - create mở cho guest (optional auth)
		comments := v1.Group("/comments")
		{
			comments.POST("", maybeAuthn, c.CommentHandler.Create)

			comments.GET("", authn, middleware.Authorize("comment", "list_all"), c.CommentHandler.ListAll)
			comments.PATCH("/:id/approve", authn, middleware.Authorize("comment", "moderate"), c.CommentHandler.Approve)
			comments.PATCH("/:id/reject", authn, middleware.Authorize("comment", "moderate"), c.CommentHandler.Reject)
			comments.PATCH("/:id/spam", authn, middleware.Authorize("comment", "moderate"), c.CommentHandler.MarkSpam)

			// Owner-or-admin check trong service
			comments.DELETE("/:id", authn, c.CommentHandler.Delete)
		}

		// Media
		mediaGroup := v1.Group("/media", authn)
		{
			mediaGroup.POST("", middleware.Authorize("media", "upload"), c.MediaHandler.Upload)
			mediaGroup.GET("", middleware.Authorize("media", "list"), c.MediaHandler.List)
			mediaGroup.GET("/:id", c.MediaHandler.Get)
			mediaGroup.DELETE("/:id", c.MediaHandler.Delete)
		}
	}

	return router, rateLimiter
}

// healthHandler check DB + Redis, trả degraded khi cache down
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "ok"
		checks := gin.H{}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.Error(ctx, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		checks["database"] = "up"

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = "down"
			status = "degraded"
		} else {
			checks["cache"] = "up"
		}

		response.Success(ctx, http.StatusOK, "", gin.H{
			"status": status,
			"checks": checks,
		})
	}
}
