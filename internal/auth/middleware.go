package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUser   = "auth_user"
	ContextKeyClaims = "auth_claims"
)

// AuthType indicates where the credential was found
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeCookie AuthType = "cookie"
	AuthTypeBearer AuthType = "bearer"
)

const bearerPrefix = "Bearer "

// FailureHook is notified with a short reason whenever a request is rejected.
type FailureHook func(reason string)

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	service   *Service
	cookies   *CookieHelper
	onFailure FailureHook
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, cookies *CookieHelper) *Middleware {
	return &Middleware{service: service, cookies: cookies}
}

// OnFailure registers a hook for rejected requests, e.g. a metrics counter.
func (m *Middleware) OnFailure(hook FailureHook) {
	m.onFailure = hook
}

// RequireAuth rejects requests without a valid token with 401.
// On success the user and claims are stored in the context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := ExtractToken(c, m.cookies.Name())

		user, claims, err := m.service.Authorize(c.Request.Context(), raw)
		if err != nil {
			m.reject(c, err)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func (m *Middleware) reject(c *gin.Context, err error) {
	if !errors.Is(err, entities.ErrUnauthenticated) {
		log.Printf("Authentication check failed: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if m.onFailure != nil {
		m.onFailure(failureReason(err))
	}

	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "could not validate credentials",
	})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "rejected"
	}
}

// ExtractToken returns the raw token from the Authorization header or, when the
// header is absent, from the auth cookie. A case-insensitive "Bearer " prefix is
// stripped from either source.
func ExtractToken(c *gin.Context, cookieName string) (string, AuthType) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		return stripBearer(header), AuthTypeBearer
	}
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return stripBearer(strings.TrimSpace(cookie)), AuthTypeCookie
	}
	return "", AuthTypeNone
}

func stripBearer(value string) string {
	if len(value) >= len(bearerPrefix) && strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(value[len(bearerPrefix):])
	}
	return value
}

// Helper functions to extract auth data from Gin context

// CurrentUser returns the authenticated user, or nil outside RequireAuth.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// CurrentClaims returns the verified token claims, or nil outside RequireAuth.
func CurrentClaims(c *gin.Context) *Claims {
	if v, exists := c.Get(ContextKeyClaims); exists {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}
