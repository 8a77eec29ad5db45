package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/library-catalog/internal/entities"
	"github.com/mrlokans/library-catalog/internal/forms"
	"github.com/mrlokans/library-catalog/internal/web"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	ListAuthors() ([]entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	InsertAuthor(author *entities.Author) error
	DeleteAuthor(id uint) error
}

type AuthorsController struct {
	store    AuthorStore
	sessions *web.SessionManager
}

func NewAuthorsController(store AuthorStore, sessions *web.SessionManager) *AuthorsController {
	return &AuthorsController{store: store, sessions: sessions}
}

// AuthorsPage lists all authors.
// GET /authors
func (controller *AuthorsController) AuthorsPage(c *gin.Context) {
	authors, err := controller.store.ListAuthors()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading authors: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "authors", gin.H{
		"Authors":   authors,
		"Flash":     popFlash(c, controller.sessions),
		"CSRFField": csrfField(c),
	})
}

// AddAuthorForm renders the author-creation form.
// GET /add_author
func (controller *AuthorsController) AddAuthorForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_author", gin.H{
		"Flash":     popFlash(c, controller.sessions),
		"CSRFField": csrfField(c),
	})
}

// AddAuthorSubmit creates an author from the submitted form. On any failure
// nothing is persisted, an error notification is flashed and the user is sent
// back to the empty form.
// POST /add_author
func (controller *AuthorsController) AddAuthorSubmit(c *gin.Context) {
	form := forms.AddAuthorForm{
		Name:        c.PostForm("name"),
		BirthDate:   c.PostForm("birthdate"),
		DateOfDeath: c.PostForm("date_of_death"),
	}

	if err := form.Validate(); err != nil {
		flashError(c, controller.sessions, "Error adding author: "+err.Error())
		redirectTo(c, "/add_author")
		return
	}

	author, err := form.Author()
	if err != nil {
		flashError(c, controller.sessions, "Error adding author: "+err.Error())
		redirectTo(c, "/add_author")
		return
	}

	if err := controller.store.InsertAuthor(author); err != nil {
		flashError(c, controller.sessions, "Error adding author: "+err.Error())
		redirectTo(c, "/add_author")
		return
	}

	flashSuccess(c, controller.sessions, "Author added successfully!")
	redirectTo(c, "/authors")
}

// DeleteAuthor removes an author and, through the schema cascade, all of its
// books. A missing author is terminal: 404, no retry.
// POST /author/:id/delete
func (controller *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.DeleteAuthor(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Author not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error deleting author: %s", err.Error())
		return
	}

	flashSuccess(c, controller.sessions, "Author deleted successfully!")
	redirectTo(c, "/authors")
}
