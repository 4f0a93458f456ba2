package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/navidh0/librarian/internal/auth"
	"github.com/navidh0/librarian/internal/database"
	"github.com/navidh0/librarian/internal/entities"
)

// RouterConfig carries all dependencies needed to build the HTTP router.
type RouterConfig struct {
	Database       *database.Database
	BookStore      BookStore
	CategoryStore  CategoryStore
	FavoritesStore FavoritesStore
	FavoriteMarks  FavoriteMarks

	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	AuthController *auth.AuthController
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	AllowedOrigins []string
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", auth.CSRFTokenHeader},
			ExposeHeaders:    []string{auth.CSRFTokenHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	router.Use(cfg.AuthMiddleware.Identify())

	// Public endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	cfg.AuthController.RegisterRoutes(router)

	booksController := NewBooksController(cfg.BookStore, cfg.CategoryStore, cfg.FavoriteMarks, cfg.Database)
	categoriesController := NewCategoriesController(cfg.CategoryStore)
	favoritesController := NewFavoritesController(cfg.FavoritesStore, cfg.BookStore)
	publishersController := NewPublishersController(cfg.Database)
	authorsController := NewAuthorsController(cfg.Database)

	// Endpoints for any authenticated user
	authed := router.Group("/", cfg.AuthMiddleware.RequireAuth())
	authed.GET("/api/books", booksController.List)
	authed.GET("/api/books/favorites", favoritesController.List)
	authed.POST("/api/books/:id/favorite", favoritesController.Toggle)

	// Admin-only catalog mutations
	admin := router.Group("/", cfg.AuthMiddleware.RequireAuth(),
		cfg.AuthMiddleware.RequireRole(entities.UserRoleAdmin))
	admin.POST("/api/books", booksController.Create)
	admin.PUT("/api/books/:id", booksController.Update)
	admin.DELETE("/api/books/:id", booksController.Delete)
	admin.DELETE("/api/books", booksController.BulkDelete)

	admin.GET("/api/categories", categoriesController.List)
	admin.POST("/api/categories", categoriesController.Create)
	admin.DELETE("/api/categories/:id", categoriesController.Delete)

	admin.GET("/api/publishers", publishersController.List)
	admin.POST("/api/publishers", publishersController.Create)
	admin.DELETE("/api/publishers/:id", publishersController.Delete)

	admin.GET("/api/authors", authorsController.List)
	admin.POST("/api/authors", authorsController.Create)

	return router
}
