package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/careerpath/internal/access"
	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/entities"
)

type signupRequest struct {
	FullName string `json:"full_name" form:"full_name" binding:"required,max=150"`
	Username string `json:"username" form:"username" binding:"required,username"`
	Email    string `json:"email" form:"email" binding:"required,email,max=150"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type updateUserRequest struct {
	FullName string `json:"full_name" form:"full_name" binding:"omitempty,max=150"`
	Username string `json:"username" form:"username" binding:"omitempty,username"`
	Email    string `json:"email" form:"email" binding:"omitempty,email,max=150"`
}

// TokenResponse is returned by the API login flow.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UsersController struct {
	authService *auth.Service
	cookies     *auth.CookieHelper
	users       UserStore
	enrollments EnrollmentStore
	limiter     LoginLimiter
	auditor     AuditLog
	metrics     *Metrics
	guard       *access.Guard[uuid.UUID, *entities.User]
}

func NewUsersController(cfg RouterConfig) *UsersController {
	return &UsersController{
		authService: cfg.AuthService,
		cookies:     cfg.Cookies,
		users:       cfg.Users,
		enrollments: cfg.Enrollments,
		limiter:     cfg.RateLimiter,
		auditor:     cfg.Auditor,
		metrics:     cfg.Metrics,
		guard:       access.NewGuard("user", cfg.Users.GetByID),
	}
}

// Signup registers a new account.
// POST /users/create
func (uc *UsersController) Signup(c *gin.Context) {
	var req signupRequest
	if !bindRequest(c, &req) {
		return
	}

	user, err := uc.authService.Register(c.Request.Context(), auth.Registration{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondDomainError(c, err, "signup")
		return
	}

	uc.auditor.LogChange(user.ID.String(), entities.AuditEventAccount, "user", user.ID.String(), "Signed up as "+user.Username)

	if wantsJSON(c) {
		respondCreated(c, user)
		return
	}
	c.Redirect(http.StatusFound, "/users/show/login")
}

// LoginToken exchanges credentials for a bearer token.
// POST /users/login_token
func (uc *UsersController) LoginToken(c *gin.Context) {
	var req loginRequest
	if !bindRequest(c, &req) {
		return
	}

	result, ok := uc.login(c, req)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		ExpiresAt:   result.ExpiresAt,
	})
}

// LoginBasic is the browser form flow: it stores the token in a cookie and redirects.
// POST /users/login_basic
func (uc *UsersController) LoginBasic(c *gin.Context) {
	var req loginRequest
	if !bindRequest(c, &req) {
		return
	}

	result, ok := uc.login(c, req)
	if !ok {
		return
	}

	uc.cookies.SetToken(c, result.Token, uc.authService.Tokens().TTL())
	c.Redirect(http.StatusFound, "/courses")
}

// login runs the shared credential check, rate limiting and audit.
// It writes the failure response itself and reports whether the caller may continue.
func (uc *UsersController) login(c *gin.Context, req loginRequest) (*auth.LoginResult, bool) {
	ip := c.ClientIP()

	if uc.limiter != nil {
		if allowed, retryAfter := uc.limiter.Allow(ip, req.Username); !allowed {
			uc.metrics.loginAttempt("throttled")
			auth.AbortTooManyRequests(c, retryAfter)
			return nil, false
		}
	}

	result, err := uc.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, entities.ErrUnauthenticated) {
			respondInternalError(c, err, "login")
			return nil, false
		}

		uc.metrics.loginAttempt("failure")
		uc.auditor.LogAuth("", "login", ip, c.Request.UserAgent(), err)

		if uc.limiter != nil {
			if locked, retryAfter := uc.limiter.RecordFailure(ip, req.Username); locked {
				auth.AbortTooManyRequests(c, retryAfter)
				return nil, false
			}
		}

		uc.rejectLogin(c)
		return nil, false
	}

	if uc.limiter != nil {
		uc.limiter.RecordSuccess(ip, req.Username)
	}
	uc.metrics.loginAttempt("success")
	uc.auditor.LogAuth(result.User.ID.String(), "login", ip, c.Request.UserAgent(), nil)
	return result, true
}

func (uc *UsersController) rejectLogin(c *gin.Context) {
	scheme := "Bearer"
	if c.FullPath() == "/users/login_basic" {
		scheme = "Basic"
	}
	c.Header("WWW-Authenticate", scheme)
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "incorrect username or password", Code: "unauthenticated"})
}

// Logout clears the cookie and revokes the presented token. It never fails.
// POST /users/logout
func (uc *UsersController) Logout(c *gin.Context) {
	raw, _ := auth.ExtractToken(c, uc.cookies.Name())

	claims, err := uc.authService.Logout(c.Request.Context(), raw)
	if err != nil {
		log.Printf("Logout: failed to revoke token: %v", err)
	}
	if claims != nil {
		uc.auditor.LogAuth(claims.UserID, "logout", c.ClientIP(), c.Request.UserAgent(), nil)
	}

	uc.cookies.Clear(c)
	c.Redirect(http.StatusFound, "/")
}

// List returns all users.
// GET /users
func (uc *UsersController) List(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Me returns the authenticated user.
// GET /users/me
func (uc *UsersController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}

// MyAuditEvents returns the caller's audit trail, newest first.
// GET /users/me/audit?type=create
func (uc *UsersController) MyAuditEvents(c *gin.Context) {
	user := auth.CurrentUser(c)
	limit, offset := parsePagination(c, 25, 100)

	var events []entities.AuditEvent
	var total int64
	var err error
	if eventType := entities.AuditEventType(c.Query("type")); eventType != "" {
		if !eventType.IsValid() {
			respondBadRequest(c, "unknown audit event type: "+string(eventType))
			return
		}
		events, total, err = uc.auditor.GetEventsByType(c.Request.Context(), eventType, user.ID.String(), limit, offset)
	} else {
		events, total, err = uc.auditor.GetEvents(c.Request.Context(), user.ID.String(), limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "get audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+len(events)) < total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}

// MyEnrollments lists the courses the caller is enrolled in.
// GET /users/me/enrollments
func (uc *UsersController) MyEnrollments(c *gin.Context) {
	courses, err := uc.enrollments.ListCourses(c.Request.Context(), auth.CurrentUser(c).ID)
	if err != nil {
		respondInternalError(c, err, "list enrollments")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// Get returns one user.
// GET /users/:id
func (uc *UsersController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := uc.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update edits the caller's own profile.
// PUT /users/:id/update
func (uc *UsersController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	caller := auth.CurrentUser(c)

	user, err := uc.guard.Authorize(c.Request.Context(), id, caller.ID)
	if err != nil {
		respondDomainError(c, err, "update user")
		return
	}

	var req updateUserRequest
	if !bindRequest(c, &req) {
		return
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := uc.users.UpdateProfile(c.Request.Context(), user); err != nil {
		respondDomainError(c, err, "update user")
		return
	}

	uc.auditor.LogChange(caller.ID.String(), entities.AuditEventUpdate, "user", user.ID.String(), "Updated profile")
	c.JSON(http.StatusOK, user)
}

// Delete removes the caller's own account and everything it owns.
// DELETE /users/:id/delete
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	caller := auth.CurrentUser(c)

	user, err := uc.guard.Authorize(c.Request.Context(), id, caller.ID)
	if err != nil {
		respondDomainError(c, err, "delete user")
		return
	}

	if err := uc.users.Delete(c.Request.Context(), user.ID); err != nil {
		respondDomainError(c, err, "delete user")
		return
	}

	if claims := auth.CurrentClaims(c); claims != nil {
		raw, _ := auth.ExtractToken(c, uc.cookies.Name())
		if _, err := uc.authService.Logout(c.Request.Context(), raw); err != nil {
			log.Printf("Delete user: failed to revoke token: %v", err)
		}
	}

	uc.auditor.LogDelete(caller.ID.String(), "user", user.ID.String(), user.Username)
	uc.cookies.Clear(c)
	c.Status(http.StatusNoContent)
}
