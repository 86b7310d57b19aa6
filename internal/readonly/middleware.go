// Package readonly puts the API into a maintenance mode where the catalogue
// can be browsed and users can still sign in, but nothing else is written.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// allowedPaths accept writes even in read-only mode so sessions keep working.
var allowedPaths = []string{
	"/users/login_token",
	"/users/login_basic",
	"/users/logout",
}

// Middleware blocks state-changing requests while enabled.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that rejects writes with 503.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled || isSafeMethod(c.Request.Method) || isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Header("Retry-After", "300")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":     "the service is in read-only mode",
			"read_only": true,
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func isAllowedPath(path string) bool {
	path = strings.TrimSuffix(path, "/")
	for _, allowed := range allowedPaths {
		if path == allowed {
			return true
		}
	}
	return false
}
