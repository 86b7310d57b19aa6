package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/config"
)

// CookieHelper manages the authentication cookie used by browser form flows.
// The cookie value mirrors the header form: "Bearer <token>".
type CookieHelper struct {
	name   string
	domain string
	secure bool
}

func NewCookieHelper(cfg config.Auth) *CookieHelper {
	name := cfg.CookieName
	if name == "" {
		name = config.DefaultCookieName
	}
	return &CookieHelper{name: name, domain: cfg.CookieDomain, secure: cfg.SecureCookies}
}

func (h *CookieHelper) Name() string {
	return h.name
}

// SetToken stores the token for ttl. Max-Age is expressed in seconds.
func (h *CookieHelper) SetToken(c *gin.Context, token string, ttl time.Duration) {
	h.setCookie(c, bearerPrefix+token, int(ttl.Seconds()))
}

// Clear expires the cookie immediately.
func (h *CookieHelper) Clear(c *gin.Context) {
	h.setCookie(c, "", -1)
}

func (h *CookieHelper) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.name,
		value,
		maxAge,
		"/",
		h.domain,
		h.secure,
		true, // httpOnly - always true for auth cookies
	)
}
