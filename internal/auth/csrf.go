package auth

import (
	"crypto/sha256"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFTokenHeader is the header name for CSRF token in AJAX requests.
const CSRFTokenHeader = "X-CSRF-Token"

const csrfContextKey = "csrf_token"

// CSRFKey derives the 32-byte key gorilla/csrf requires from the signing secret.
func CSRFKey(secret string) []byte {
	sum := sha256.Sum256([]byte("csrf:" + secret))
	return sum[:]
}

// CSRFOptions configures CSRFMiddleware.
type CSRFOptions struct {
	// Secure marks the CSRF cookie Secure and enables the HTTPS Referer check.
	Secure bool
	// CookieName is the auth cookie; only requests carrying it are checked.
	CookieName string
	// TrustedOrigins are extra hosts (host[:port]) allowed to submit forms.
	TrustedOrigins []string
	// Exempt paths are never checked, e.g. logout.
	Exempt []string
}

// CSRFMiddleware protects cookie-authenticated browser requests.
// Unsafe requests are checked only when they carry the auth cookie and no
// Authorization header: a cross-site form can send the cookie but cannot set
// the header, and requests without the cookie have no session to ride on.
// Safe requests always pass through so a token can be issued.
func CSRFMiddleware(key []byte, opts CSRFOptions) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		key,
		csrf.Secure(opts.Secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.RequestHeader(CSRFTokenHeader),
		csrf.TrustedOrigins(opts.TrustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if !isSafeMethod(c.Request.Method) && !needsCSRFCheck(c, opts) {
			c.Next()
			return
		}

		req := c.Request
		if !opts.Secure {
			req = csrf.PlaintextHTTPRequest(req)
		}

		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Set(csrfContextKey, csrf.Token(r))
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, req)
		if !c.IsAborted() && c.Writer.Written() && c.Writer.Status() == http.StatusForbidden {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"CSRF token invalid or missing"}`))
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func needsCSRFCheck(c *gin.Context, opts CSRFOptions) bool {
	if strings.TrimSpace(c.GetHeader("Authorization")) != "" {
		return false
	}
	path := strings.TrimSuffix(c.Request.URL.Path, "/")
	for _, exempt := range opts.Exempt {
		if path == exempt {
			return false
		}
	}
	cookie, err := c.Cookie(opts.CookieName)
	return err == nil && cookie != ""
}

// GetCSRFToken retrieves the CSRF token from the Gin context.
func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get(csrfContextKey); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
