package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-catalog/internal/database"
	"github.com/mrlokans/library-catalog/internal/web"
)

// RouterConfig carries all dependencies for route registration.
type RouterConfig struct {
	AuthorStore    AuthorStore
	BookStore      BookStore
	Database       *database.Database
	SessionManager *web.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool
	TemplatesPath  string
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(web.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	tmpl := template.Must(template.ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	health := NewHealthController(cfg.Database, cfg.Version)
	authorsController := NewAuthorsController(cfg.AuthorStore, cfg.SessionManager)
	booksController := NewBooksController(cfg.BookStore, cfg.SessionManager)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog pages
	router.GET("/", booksController.HomePage)
	router.GET("/authors", authorsController.AuthorsPage)

	// Add flows
	router.GET("/add_author", authorsController.AddAuthorForm)
	router.POST("/add_author", authorsController.AddAuthorSubmit)
	router.GET("/add_book", booksController.AddBookForm)
	router.POST("/add_book", booksController.AddBookSubmit)

	// Delete flows
	router.POST("/author/:id/delete", authorsController.DeleteAuthor)
	router.POST("/book/:id/delete", booksController.DeleteBook)

	return router
}
