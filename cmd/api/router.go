package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")

	if c.Config.RateLimit.Enabled && c.Redis != nil {
		limiter := middleware.NewRedisTokenBucket(
			c.Redis,
			c.Config.RateLimit.RequestsPerSecond,
			c.Config.RateLimit.Burst,
		)
		v1.Use(limiter.Middleware())
	}

	// Mutating routes go behind the bearer-token guard when enabled; the
	// write guard is a no-op otherwise.
	writeGuard := func(c *gin.Context) { c.Next() }
	if c.Config.Auth.Enabled {
		writeGuard = middleware.AuthMiddleware(c.JWTManager)
	}

	v1.GET("/health", healthCheckHandler(c))

	setupAuthorRoutes(v1, c, writeGuard)
	setupBookRoutes(v1, c, writeGuard)
	setupContactRoutes(v1, c, writeGuard)

	return router
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, writeGuard gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.POST("", writeGuard, c.AuthorHandler.Create)
		authors.PUT("/:id", writeGuard, c.AuthorHandler.Update)
		authors.DELETE("/:id", writeGuard, c.AuthorHandler.Delete)
		authors.POST("/:id/awards", writeGuard, c.AuthorHandler.AddAward)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, writeGuard gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.GetAll)
		books.GET("/:id", c.BookHandler.GetByID)
		books.POST("", writeGuard, c.BookHandler.Create)
		books.PUT("/:id", writeGuard, c.BookHandler.Update)
		books.DELETE("/:id", writeGuard, c.BookHandler.Delete)
		books.POST("/:id/borrow", writeGuard, c.BookHandler.Borrow)
		books.POST("/:id/return", writeGuard, c.BookHandler.Return)
	}
}

func setupContactRoutes(v1 *gin.RouterGroup, c *container.Container, writeGuard gin.HandlerFunc) {
	contacts := v1.Group("/contacts")
	{
		contacts.GET("", c.ContactHandler.GetAll)
		contacts.GET("/:id", c.ContactHandler.GetByID)
		contacts.POST("", writeGuard, c.ContactHandler.Create)
		contacts.PUT("/:id", writeGuard, c.ContactHandler.Update)
		contacts.DELETE("/:id", writeGuard, c.ContactHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if err := c.Mongo.HealthCheck(checkCtx); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		ctx.JSON(code, gin.H{
			"status":      status,
			"service":     c.Config.App.Name,
			"environment": c.Config.App.Environment,
		})
	}
}
