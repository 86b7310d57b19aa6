package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if err := RegisterValidators(); err != nil {
		log.Printf("Warning: custom validators not registered: %v", err)
	}
	if cfg.Auditor == nil {
		cfg.Auditor = noopAudit{}
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Preflight requests must be answered before auth and CSRF see them
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	}

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", cfg.Metrics.Handler())
		cfg.AuthMiddleware.OnFailure(cfg.Metrics.AuthFailure)
	}

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware(cfg.SecureCookies))

	if cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.Handler())
	}

	// CSRF protects cookie-authenticated browser requests; bearer clients skip it
	if len(cfg.CSRFKey) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFKey, auth.CSRFOptions{
			Secure:         cfg.SecureCookies,
			CookieName:     cfg.Cookies.Name(),
			TrustedOrigins: originHosts(cfg.CORSAllowedOrigins),
			Exempt:         []string{"/users/logout"},
		}))
		router.GET("/csrf-token", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"csrf_token": auth.GetCSRFToken(c)})
		})
	}

	health := NewHealthController(cfg.Database, cfg.TokenStore, cfg.Version)
	if cfg.AuditCleanup != nil {
		health.WithCleanup(cfg.AuditCleanup)
	}
	users := NewUsersController(cfg)
	careers := NewCareersController(cfg.Careers, cfg.Courses, cfg.Auditor)
	courses := NewCoursesController(cfg.Courses, cfg.Enrollments, cfg.Auditor)
	ratings := NewRatingsController(cfg.Ratings)
	recommendations := NewRecommendationsController(cfg.Recommender)

	requireAuth := cfg.AuthMiddleware.RequireAuth()

	// Health endpoints
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the career recommendation system"})
	})
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Accounts
	router.POST("/users/create", users.Signup)
	router.POST("/users/login_token", users.LoginToken)
	router.POST("/users/login_basic", users.LoginBasic)
	router.POST("/users/logout", users.Logout)
	router.GET("/users", users.List)
	router.GET("/users/me", requireAuth, users.Me)
	router.GET("/users/me/audit", requireAuth, users.MyAuditEvents)
	router.GET("/users/me/enrollments", requireAuth, users.MyEnrollments)
	router.GET("/users/:id", users.Get)
	router.PUT("/users/:id/update", requireAuth, users.Update)
	router.DELETE("/users/:id/delete", requireAuth, users.Delete)

	// Careers
	careerRoutes := router.Group("/careers", requireAuth)
	careerRoutes.GET("", careers.List)
	careerRoutes.GET("/:id", careers.Get)
	careerRoutes.GET("/:id/courses", careers.Courses)
	careerRoutes.POST("/create", careers.Create)
	careerRoutes.PUT("/:id/update", careers.Update)
	careerRoutes.DELETE("/:id/delete", careers.Delete)

	// Courses: browsing is public, changes need a login
	router.GET("/courses", courses.List)
	router.GET("/courses/:id", courses.Get)
	router.POST("/courses/create", requireAuth, courses.Create)
	router.PUT("/courses/:id/update", requireAuth, courses.Update)
	router.DELETE("/courses/:id/delete", requireAuth, courses.Delete)
	router.POST("/courses/:id/enroll", requireAuth, courses.Enroll)
	router.DELETE("/courses/:id/enroll", requireAuth, courses.Unenroll)

	// Ratings
	router.POST("/rates", requireAuth, ratings.Rate)
	router.GET("/rates/:course_id", requireAuth, ratings.Get)

	// Recommendations
	router.POST("/recommendations", requireAuth, recommendations.Recommend)
	router.GET("/recommendations", requireAuth, recommendations.History)

	return router
}
