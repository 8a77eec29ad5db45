package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// ContextKeyCSRFToken is where the middleware stores the per-request token for
// template rendering.
const ContextKeyCSRFToken = "csrf_token"

// CSRFMiddleware creates a Gin middleware protecting the POST form endpoints.
// Safe methods (GET, HEAD, OPTIONS, TRACE) pass through untouched.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		accepted := false
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accepted = true
			c.Set(ContextKeyCSRFToken, csrf.Token(r))
			// Session middleware runs after this, layering its context on top
			// of the CSRF one.
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)

		// On rejection csrfProtect writes the error response and never calls
		// the inner handler; abort so the rest of the chain does not run.
		if !accepted {
			c.Abort()
		}
	}
}

// csrfErrorHandler redirects failed form submissions back to the originating
// page instead of showing a bare 403.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	referer := r.Referer()
	if referer != "" {
		separator := "?"
		if strings.Contains(referer, "?") {
			separator = "&"
		}
		http.Redirect(w, r, referer+separator+"error=Session+expired.+Please+try+again.", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("Forbidden: CSRF token invalid or missing"))
}
