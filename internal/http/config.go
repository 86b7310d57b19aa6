package http

import (
	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/readonly"
	"github.com/mrlokans/careerpath/internal/recommend"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	Users       UserStore
	Careers     CareerStore
	Courses     CourseStore
	Ratings     RatingStore
	Enrollments EnrollmentStore
	Recommender *recommend.Service

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	Cookies        *auth.CookieHelper
	RateLimiter    LoginLimiter // optional

	// Revocation store, reported by /health (optional)
	TokenStore Pinger

	// Audit retention job, reported by /health (optional)
	AuditCleanup CleanupStatus

	// Audit trail (optional)
	Auditor AuditLog

	// Metrics (optional)
	Metrics *Metrics

	// CSRF protection for cookie-authenticated requests; disabled when empty
	CSRFKey       []byte
	SecureCookies bool

	// Browser origins allowed cross-origin access; CORS is off when empty
	CORSAllowedOrigins []string

	// Rejects writes while the service is under maintenance (optional)
	ReadOnly *readonly.Middleware

	// Application info
	Version string
}
