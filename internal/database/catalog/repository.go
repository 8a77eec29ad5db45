// Package catalog provides database operations for authors and books.
//
// It implements the AuthorStore and BookStore interfaces defined in
// internal/http.
package catalog

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library-catalog/internal/entities"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns all books with their authors resolved, in storage order.
func (r *Repository) ListBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Find(&books).Error
	return books, err
}

// ListAuthors returns all authors in storage order.
func (r *Repository) ListAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Find(&authors).Error
	return authors, err
}

// GetAuthorByID retrieves a single author, gorm.ErrRecordNotFound if absent.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetBookByID retrieves a single book with its author resolved.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.Preload("Author").First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// InsertAuthor persists a new author.
func (r *Repository) InsertAuthor(author *entities.Author) error {
	return r.db.Create(author).Error
}

// InsertBook persists a new book. A duplicate ISBN or a missing author row
// surfaces as a constraint error from the database.
func (r *Repository) InsertBook(book *entities.Book) error {
	return r.db.Omit("Author").Create(book).Error
}

// CountBooksByAuthor returns how many books reference the given author.
func (r *Repository) CountBooksByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// DeleteAuthor removes an author. The schema-level cascade removes all of the
// author's books in the same operation. Returns gorm.ErrRecordNotFound when
// the author does not exist.
func (r *Repository) DeleteAuthor(id uint) error {
	if _, err := r.GetAuthorByID(id); err != nil {
		return err
	}
	return r.db.Delete(&entities.Author{}, id).Error
}

// DeleteBookAndCollapseOrphanAuthor removes a book and, if its author is left
// with no remaining books, removes the author as well. The two deletes commit
// separately: a failure after the first leaves the book gone and the childless
// author in place. Returns whether the author was also removed, and
// gorm.ErrRecordNotFound when the book does not exist.
func (r *Repository) DeleteBookAndCollapseOrphanAuthor(id uint) (authorRemoved bool, err error) {
	book, err := r.GetBookByID(id)
	if err != nil {
		return false, err
	}

	if err := r.db.Delete(&entities.Book{}, id).Error; err != nil {
		return false, err
	}

	remaining, err := r.CountBooksByAuthor(book.AuthorID)
	if err != nil {
		return false, err
	}
	if remaining > 0 {
		return false, nil
	}

	if err := r.db.Delete(&entities.Author{}, book.AuthorID).Error; err != nil {
		return false, err
	}
	return true, nil
}
