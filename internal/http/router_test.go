package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-catalog/internal/config"
	"github.com/mrlokans/library-catalog/internal/database"
	"github.com/mrlokans/library-catalog/internal/database/catalog"
	"github.com/mrlokans/library-catalog/internal/web"
)

var csrfTokenPattern = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

// newSecuredTestRouter builds the route set with the full middleware stack:
// CSRF protection and SQLite-backed sessions, as wired in production.
func newSecuredTestRouter(t *testing.T, db *database.Database, repo *catalog.Repository) *gin.Engine {
	t.Helper()

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	sessions, err := web.NewSessionManager(sqlDB, config.Session{Lifetime: time.Hour})
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		AuthorStore:    repo,
		BookStore:      repo,
		Database:       db,
		SessionManager: sessions,
		CSRFSecret:     []byte("01234567890123456789012345678901"),
		TemplatesPath:  "../../templates",
		Version:        "test",
	})
}

func getWithCookies(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	return w
}

func postFormWithCookies(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	return w
}

// mergeCookies layers freshly issued cookies over the ones already held,
// replacing by name like a browser jar would.
func mergeCookies(held []*http.Cookie, issued []*http.Cookie) []*http.Cookie {
	merged := make([]*http.Cookie, 0, len(held)+len(issued))
	for _, cookie := range held {
		replaced := false
		for _, fresh := range issued {
			if fresh.Name == cookie.Name {
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, cookie)
		}
	}
	return append(merged, issued...)
}

func extractCSRFToken(t *testing.T, body string) string {
	t.Helper()
	match := csrfTokenPattern.FindStringSubmatch(body)
	require.Len(t, match, 2, "form page should carry a hidden CSRF token field")
	return match[1]
}

func TestSecuredRouter_AddAuthorFullStack(t *testing.T) {
	db, repo, cleanup := setupTestCatalog(t)
	defer cleanup()
	router := newSecuredTestRouter(t, db, repo)

	// Fetch the form to obtain the token and the CSRF cookie.
	formPage := getWithCookies(router, "/add_author", nil)
	require.Equal(t, http.StatusOK, formPage.Code)
	token := extractCSRFToken(t, formPage.Body.String())
	cookies := formPage.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Submit with the token; the store is written and we get redirected.
	submit := postFormWithCookies(router, "/add_author", url.Values{
		"gorilla.csrf.Token": {token},
		"name":               {"Jane Austen"},
		"birthdate":          {"1775-12-16"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, submit.Code)
	assert.Equal(t, "/authors", submit.Header().Get("Location"))

	authors, err := repo.ListAuthors()
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Jane Austen", authors[0].Name)

	// The session cookie issued on the redirect carries the flash message.
	cookies = mergeCookies(cookies, submit.Result().Cookies())
	listing := getWithCookies(router, "/authors", cookies)
	require.Equal(t, http.StatusOK, listing.Code)
	assert.Contains(t, listing.Body.String(), "Author added successfully!")
	assert.Contains(t, listing.Body.String(), "Jane Austen")

	// Flash messages show once.
	cookies = mergeCookies(cookies, listing.Result().Cookies())
	again := getWithCookies(router, "/authors", cookies)
	assert.NotContains(t, again.Body.String(), "Author added successfully!")
}

func TestSecuredRouter_TokenlessDeleteLeavesStoreUntouched(t *testing.T) {
	db, repo, cleanup := setupTestCatalog(t)
	defer cleanup()
	router := newSecuredTestRouter(t, db, repo)

	seedAuthorWithBooks(t, repo, "Herman Melville", "9781503280786")
	books, err := repo.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)

	w := postFormWithCookies(router, "/book/1/delete", url.Values{}, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")

	books, err = repo.ListBooks()
	require.NoError(t, err)
	assert.Len(t, books, 1, "rejected request must not reach the store")

	authors, err := repo.ListAuthors()
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestSecuredRouter_StaleTokenSubmitIsRejected(t *testing.T) {
	db, repo, cleanup := setupTestCatalog(t)
	defer cleanup()
	router := newSecuredTestRouter(t, db, repo)

	formPage := getWithCookies(router, "/add_author", nil)
	token := extractCSRFToken(t, formPage.Body.String())

	// Token without its matching cookie is as good as no token.
	w := postFormWithCookies(router, "/add_author", url.Values{
		"gorilla.csrf.Token": {token},
		"name":               {"Jane Austen"},
	}, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)

	authors, err := repo.ListAuthors()
	require.NoError(t, err)
	assert.Empty(t, authors)
}
