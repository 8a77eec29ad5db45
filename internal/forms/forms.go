// Package forms holds the submitted form payloads for the two add flows and
// their validation rules.
package forms

import (
	"fmt"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mrlokans/library-catalog/internal/entities"
)

// DateLayout is the expected format for the optional author date fields.
const DateLayout = "2006-01-02"

type AddAuthorForm struct {
	Name        string
	BirthDate   string // Optional, YYYY-MM-DD
	DateOfDeath string // Optional, YYYY-MM-DD
}

func (f AddAuthorForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("name is required")),
		validation.Field(&f.BirthDate, validation.Date(DateLayout).Error("birthdate must be in YYYY-MM-DD format")),
		validation.Field(&f.DateOfDeath, validation.Date(DateLayout).Error("date of death must be in YYYY-MM-DD format")),
	)
}

// Author converts the validated form into an entity, parsing the optional
// date fields.
func (f AddAuthorForm) Author() (*entities.Author, error) {
	birthDate, err := parseOptionalDate(f.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("invalid birthdate: %w", err)
	}
	dateOfDeath, err := parseOptionalDate(f.DateOfDeath)
	if err != nil {
		return nil, fmt.Errorf("invalid date of death: %w", err)
	}
	return &entities.Author{
		Name:        f.Name,
		BirthDate:   birthDate,
		DateOfDeath: dateOfDeath,
	}, nil
}

type AddBookForm struct {
	Title           string
	ISBN            string
	PublicationYear string
	Author          string // Selected author ID
}

// AuthorSelected reports whether an author was chosen in the dropdown. This
// is checked before any other rule so the user gets the specific message.
func (f AddBookForm) AuthorSelected() bool {
	return f.Author != ""
}

func (f AddBookForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("title is required")),
		validation.Field(&f.ISBN, validation.Required.Error("isbn is required")),
		validation.Field(&f.PublicationYear,
			validation.Required.Error("publication year is required"),
			is.Int.Error("publication year must be an integer"),
		),
		validation.Field(&f.Author, is.Int.Error("author must be an integer")),
	)
}

// Book converts the validated form into an entity.
func (f AddBookForm) Book() (*entities.Book, error) {
	year, err := strconv.Atoi(f.PublicationYear)
	if err != nil {
		return nil, fmt.Errorf("invalid publication year: %w", err)
	}
	authorID, err := strconv.ParseUint(f.Author, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid author: %w", err)
	}
	return &entities.Book{
		Title:           f.Title,
		ISBN:            f.ISBN,
		PublicationYear: year,
		AuthorID:        uint(authorID),
	}, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
