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

// BookStore defines database operations for book management. ListAuthors is
// included because the add-book form needs the author choices on every path.
type BookStore interface {
	ListBooks() ([]entities.Book, error)
	ListAuthors() ([]entities.Author, error)
	GetBookByID(id uint) (*entities.Book, error)
	InsertBook(book *entities.Book) error
	DeleteBookAndCollapseOrphanAuthor(id uint) (authorRemoved bool, err error)
}

type BooksController struct {
	store    BookStore
	sessions *web.SessionManager
}

func NewBooksController(store BookStore, sessions *web.SessionManager) *BooksController {
	return &BooksController{store: store, sessions: sessions}
}

// HomePage lists all books with their authors.
// GET /
func (controller *BooksController) HomePage(c *gin.Context) {
	books, err := controller.store.ListBooks()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "home", gin.H{
		"Books":     books,
		"Flash":     popFlash(c, controller.sessions),
		"CSRFField": csrfField(c),
	})
}

// AddBookForm renders the book-creation form with the author dropdown.
// GET /add_book
func (controller *BooksController) AddBookForm(c *gin.Context) {
	authors, err := controller.store.ListAuthors()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading authors: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "add_book", gin.H{
		"Authors":   authors,
		"Flash":     popFlash(c, controller.sessions),
		"CSRFField": csrfField(c),
	})
}

// AddBookSubmit creates a book from the submitted form. The author selection
// is checked first; everything else (non-integer year, unknown author,
// duplicate ISBN) fails at validation or insert time, flashes an error and
// sends the user back to the empty form.
// POST /add_book
func (controller *BooksController) AddBookSubmit(c *gin.Context) {
	form := forms.AddBookForm{
		Title:           c.PostForm("title"),
		ISBN:            c.PostForm("isbn"),
		PublicationYear: c.PostForm("publication_year"),
		Author:          c.PostForm("author"),
	}

	if !form.AuthorSelected() {
		flashError(c, controller.sessions, "Author selection is required.")
		redirectTo(c, "/add_book")
		return
	}

	if err := form.Validate(); err != nil {
		flashError(c, controller.sessions, "Error adding book: "+err.Error())
		redirectTo(c, "/add_book")
		return
	}

	book, err := form.Book()
	if err != nil {
		flashError(c, controller.sessions, "Error adding book: "+err.Error())
		redirectTo(c, "/add_book")
		return
	}

	if err := controller.store.InsertBook(book); err != nil {
		flashError(c, controller.sessions, "Error adding book: "+err.Error())
		redirectTo(c, "/add_book")
		return
	}

	flashSuccess(c, controller.sessions, "Book added successfully!")
	redirectTo(c, "/")
}

// DeleteBook removes a book; if its author is left without books, the author
// goes too. A missing book is terminal: 404, no retry.
// POST /book/:id/delete
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.store.DeleteBookAndCollapseOrphanAuthor(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error deleting book: %s", err.Error())
		return
	}

	flashSuccess(c, controller.sessions, "Book deleted successfully!")
	redirectTo(c, "/")
}
