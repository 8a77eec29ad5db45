package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-catalog/internal/database"
	"github.com/mrlokans/library-catalog/internal/database/catalog"
	"github.com/mrlokans/library-catalog/internal/entities"
)

func setupTestCatalog(t *testing.T) (*database.Database, *catalog.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := catalog.NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, repo, cleanup
}

// newTestRouter builds the full route set without CSRF or sessions, using the
// real page templates.
func newTestRouter(db *database.Database, repo *catalog.Repository) *gin.Engine {
	return NewRouter(RouterConfig{
		AuthorStore:   repo,
		BookStore:     repo,
		Database:      db,
		TemplatesPath: "../../templates",
		Version:       "test",
	})
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func seedAuthorWithBooks(t *testing.T, repo *catalog.Repository, name string, isbns ...string) *entities.Author {
	t.Helper()
	author := &entities.Author{Name: name}
	require.NoError(t, repo.InsertAuthor(author))
	for i, isbn := range isbns {
		book := &entities.Book{
			Title:           name + " Book",
			ISBN:            isbn,
			PublicationYear: 1900 + i,
			AuthorID:        author.ID,
		}
		require.NoError(t, repo.InsertBook(book))
	}
	return author
}
