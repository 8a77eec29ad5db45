package entities

import (
	"time"
)

// Author owns zero or more books. Deleting an author removes all of its books
// through the ON DELETE CASCADE constraint on books.author_id.
type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:120;not null" json:"name"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	DateOfDeath *time.Time `gorm:"type:date" json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DisplayLabel returns the label shown for the author in listings and dropdowns.
func (a Author) DisplayLabel() string {
	return a.Name
}

// Book references exactly one author. The foreign key is non-nullable, so the
// database rejects inserts pointing at a missing author.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ISBN            string    `gorm:"size:13;not null;uniqueIndex" json:"isbn"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	PublicationYear int       `gorm:"not null" json:"publication_year"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	Author          Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DisplayLabel returns the label shown for the book in listings.
func (b Book) DisplayLabel() string {
	return b.Title
}
