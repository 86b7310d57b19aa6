package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mrlokans/careerpath/internal/audit"
	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/config"
	"github.com/mrlokans/careerpath/internal/database"
	auditrepo "github.com/mrlokans/careerpath/internal/database/audit"
	"github.com/mrlokans/careerpath/internal/database/careers"
	"github.com/mrlokans/careerpath/internal/database/courses"
	"github.com/mrlokans/careerpath/internal/database/dbtest"
	"github.com/mrlokans/careerpath/internal/database/enrollments"
	"github.com/mrlokans/careerpath/internal/database/ratings"
	"github.com/mrlokans/careerpath/internal/database/recommendations"
	"github.com/mrlokans/careerpath/internal/database/users"
	"github.com/mrlokans/careerpath/internal/entities"
	"github.com/mrlokans/careerpath/internal/readonly"
	"github.com/mrlokans/careerpath/internal/recommend"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPassword = "secret123"

type testApp struct {
	router  *gin.Engine
	db      *gorm.DB
	auth    *auth.Service
	audit   *audit.Service
	metrics *Metrics
}

type appOptions struct {
	revoker   auth.Revoker
	limiter   LoginLimiter
	predictor recommend.Predictor
	csrf      bool
	readOnly  bool
	origins   []string
}

func testAuthConfig() config.Auth {
	return config.Auth{
		SecretKey:  "http-test-secret-key-at-least-32-chars",
		Algorithm:  "HS256",
		TokenTTL:   config.Week,
		CookieName: config.DefaultCookieName,
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()

	db := dbtest.Open(t)
	authCfg := testAuthConfig()

	issuer, err := auth.NewTokenIssuer(authCfg.SecretKey, authCfg.Algorithm, authCfg.TokenTTL)
	require.NoError(t, err)

	usersRepo := users.NewRepository(db)
	authService := auth.NewService(usersRepo, issuer, opts.revoker, authCfg)
	cookies := auth.NewCookieHelper(authCfg)
	auditService := audit.NewService(auditrepo.NewRepository(db))
	t.Cleanup(auditService.Wait)
	metrics := NewMetrics()

	cfg := RouterConfig{
		Database:       &database.Database{DB: db},
		Users:          usersRepo,
		Careers:        careers.NewRepository(db),
		Courses:        courses.NewRepository(db),
		Ratings:        ratings.NewRepository(db),
		Enrollments:    enrollments.NewRepository(db),
		Recommender:    recommend.NewService(opts.predictor, recommendations.NewRepository(db)),
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService, cookies),
		Cookies:        cookies,
		RateLimiter:    opts.limiter,
		Auditor:        auditService,
		Metrics:        metrics,
		ReadOnly:       readonly.NewMiddleware(opts.readOnly),
		Version:        "test",

		CORSAllowedOrigins: opts.origins,
	}
	if opts.csrf {
		cfg.CSRFKey = auth.CSRFKey(authCfg.SecretKey)
	}

	return &testApp{
		router:  NewRouter(cfg),
		db:      db,
		auth:    authService,
		audit:   auditService,
		metrics: metrics,
	}
}

// register creates a user directly through the auth service.
func (a *testApp) register(t *testing.T, username string) *entities.User {
	t.Helper()
	user, err := a.auth.Register(context.Background(), auth.Registration{
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Username: username,
		Email:    username + "@x.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	return user
}

// login returns a bearer token for an existing user.
func (a *testApp) login(t *testing.T, username string) string {
	t.Helper()
	result, err := a.auth.Login(context.Background(), username, testPassword)
	require.NoError(t, err)
	return result.Token
}

// registerAndLogin is the common setup for authenticated requests.
func (a *testApp) registerAndLogin(t *testing.T, username string) (*entities.User, string) {
	t.Helper()
	user := a.register(t, username)
	return user, a.login(t, username)
}

// doJSON sends body as JSON with an optional bearer token.
func (a *testApp) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// doForm sends an urlencoded form, optionally with cookies.
func (a *testApp) doForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func newLimiter(t *testing.T, maxAttempts int) *auth.RateLimiter {
	t.Helper()
	rl := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     maxAttempts,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
	})
	t.Cleanup(rl.Stop)
	return rl
}

func newRequestWithCookie(method, path string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(cookie)
	return req
}

func serve(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
