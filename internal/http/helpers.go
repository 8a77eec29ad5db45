package http

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/mrlokans/library-catalog/internal/web"
)

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. A non-integer value can never name an existing record, so it
// gets the same 404 as a missing one.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

// redirectTo issues a post-redirect-get response.
func redirectTo(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// --- Flash helpers (nil-safe: controllers work without a session manager) ---

func flashSuccess(c *gin.Context, sm *web.SessionManager, message string) {
	if sm == nil {
		return
	}
	sm.PutFlash(c.Request, web.FlashSuccess, message)
}

func flashError(c *gin.Context, sm *web.SessionManager, message string) {
	if sm == nil {
		return
	}
	sm.PutFlash(c.Request, web.FlashDanger, message)
}

// popFlash returns the pending notification for template rendering, or nil.
func popFlash(c *gin.Context, sm *web.SessionManager) any {
	if sm == nil {
		return nil
	}
	flash, ok := sm.PopFlash(c.Request)
	if !ok {
		return nil
	}
	return flash
}

// csrfField returns the hidden input carrying the CSRF token for forms.
// Empty when the CSRF middleware is not installed.
func csrfField(c *gin.Context) template.HTML {
	return csrf.TemplateField(c.Request)
}
