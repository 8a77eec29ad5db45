// Command generate_demo creates a demo catalog database with public domain
// authors and books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/library.sqlite]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/library-catalog/internal/database"
	"github.com/mrlokans/library-catalog/internal/database/catalog"
	"github.com/mrlokans/library-catalog/internal/entities"
)

const defaultDemoDatabasePath = "./demo/library.sqlite"

type demoAuthor struct {
	Name  string
	Born  string
	Died  string // empty for living authors
	Books []demoBook
}

type demoBook struct {
	Title string
	ISBN  string
	Year  int
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := catalog.NewRepository(db.DB)

	for _, cfg := range demoAuthors() {
		author := &entities.Author{
			Name:        cfg.Name,
			BirthDate:   parseDate(cfg.Born),
			DateOfDeath: parseDate(cfg.Died),
		}
		if err := repo.InsertAuthor(author); err != nil {
			log.Printf("Failed to save author %s: %v", cfg.Name, err)
			continue
		}

		for _, b := range cfg.Books {
			book := &entities.Book{
				Title:           b.Title,
				ISBN:            b.ISBN,
				PublicationYear: b.Year,
				AuthorID:        author.ID,
			}
			if err := repo.InsertBook(book); err != nil {
				log.Printf("Failed to save book %s: %v", b.Title, err)
			}
		}
		log.Printf("Saved: %s (%d books)", cfg.Name, len(cfg.Books))
	}

	log.Println("Demo database generated successfully!")
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Invalid demo date %q: %v", value, err)
	}
	return &t
}

func demoAuthors() []demoAuthor {
	return []demoAuthor{
		{
			Name: "Jane Austen",
			Born: "1775-12-16",
			Died: "1817-07-18",
			Books: []demoBook{
				{Title: "Pride and Prejudice", ISBN: "9780141439518", Year: 1813},
				{Title: "Sense and Sensibility", ISBN: "9780141439662", Year: 1811},
				{Title: "Emma", ISBN: "9780141439587", Year: 1815},
			},
		},
		{
			Name: "Fyodor Dostoevsky",
			Born: "1821-11-11",
			Died: "1881-02-09",
			Books: []demoBook{
				{Title: "Crime and Punishment", ISBN: "9780140449136", Year: 1866},
				{Title: "The Brothers Karamazov", ISBN: "9780374528379", Year: 1880},
			},
		},
		{
			Name: "Mary Shelley",
			Born: "1797-08-30",
			Died: "1851-02-01",
			Books: []demoBook{
				{Title: "Frankenstein", ISBN: "9780141439471", Year: 1818},
			},
		},
		{
			Name: "Herman Melville",
			Born: "1819-08-01",
			Died: "1891-09-28",
			Books: []demoBook{
				{Title: "Moby-Dick", ISBN: "9780142437247", Year: 1851},
				{Title: "Bartleby, the Scrivener", ISBN: "9781612931081", Year: 1853},
			},
		},
	}
}
