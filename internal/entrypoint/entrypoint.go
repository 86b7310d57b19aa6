package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/audit"
	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/config"
	"github.com/mrlokans/careerpath/internal/database"
	auditrepo "github.com/mrlokans/careerpath/internal/database/audit"
	"github.com/mrlokans/careerpath/internal/database/careers"
	"github.com/mrlokans/careerpath/internal/database/courses"
	"github.com/mrlokans/careerpath/internal/database/enrollments"
	"github.com/mrlokans/careerpath/internal/database/ratings"
	"github.com/mrlokans/careerpath/internal/database/recommendations"
	"github.com/mrlokans/careerpath/internal/database/users"
	http_controllers "github.com/mrlokans/careerpath/internal/http"
	"github.com/mrlokans/careerpath/internal/readonly"
	"github.com/mrlokans/careerpath/internal/recommend"
	"github.com/mrlokans/careerpath/internal/scheduler"
	"github.com/mrlokans/careerpath/internal/tokenstore"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill sends SIGTERM; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background workers stop after in-flight requests finish
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting careerpath v%s", version)

	if cfg.Auth.SecretKey == "" {
		secret, err := auth.GenerateSecretKey()
		if err != nil {
			log.Fatalf("Failed to generate signing secret: %v", err)
		}
		cfg.Auth.SecretKey = secret
		log.Printf("WARNING: OAUTH2_SECRET_KEY is not set. Generated a random key; tokens will not survive a restart.")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	usersRepo := users.NewRepository(db.DB)
	careersRepo := careers.NewRepository(db.DB)
	coursesRepo := courses.NewRepository(db.DB)
	ratingsRepo := ratings.NewRepository(db.DB)
	enrollmentsRepo := enrollments.NewRepository(db.DB)
	historyRepo := recommendations.NewRepository(db.DB)

	issuer, err := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}

	// Interface values stay untyped nil when Redis is not configured
	var revoker auth.Revoker
	var storePinger http_controllers.Pinger
	var store *tokenstore.TokenStore
	if cfg.Redis.Addr != "" {
		store, err = tokenstore.New(context.Background(), tokenstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to token store: %v", err)
		}
		revoker = store
		storePinger = store
		log.Printf("Token revocation enabled (redis %s)", cfg.Redis.Addr)
	} else {
		log.Printf("REDIS_ADDR is not set. Logout will clear cookies but tokens stay valid until expiry.")
	}

	authService := auth.NewService(usersRepo, issuer, revoker, cfg.Auth)
	cookies := auth.NewCookieHelper(cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService, cookies)

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfigFrom(cfg.Auth))

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	bgCtx, bgCancel := context.WithCancel(context.Background())
	cleanup := scheduler.NewAuditCleanupScheduler(auditService, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
	if err := cleanup.Start(bgCtx); err != nil {
		log.Printf("WARNING: audit cleanup scheduler not started: %v", err)
	}

	var predictor recommend.Predictor
	if cfg.Recommender.ModelPath != "" {
		model, err := recommend.LoadModel(cfg.Recommender.ModelPath)
		if err != nil {
			log.Fatalf("Failed to load recommender model: %v", err)
		}
		predictor = model
		log.Printf("Recommender model loaded from %s (%d classes)", cfg.Recommender.ModelPath, len(model.Classes))
	} else {
		log.Printf("RECOMMENDER_MODEL_PATH is not set. Recommendation endpoint will return 503.")
	}
	recommender := recommend.NewService(predictor, historyRepo)

	var metrics *http_controllers.Metrics
	if cfg.Metrics.Enabled {
		metrics = http_controllers.NewMetrics()
	}

	var csrfKey []byte
	if cfg.Auth.CSRFEnabled {
		csrfKey = auth.CSRFKey(cfg.Auth.SecretKey)
	}

	readOnly := readonly.NewMiddleware(cfg.Global.ReadOnly)
	if readOnly.IsEnabled() {
		log.Printf("Read-only mode enabled - write operations will be rejected")
	}

	if len(cfg.HTTP.CORSAllowedOrigins) > 0 {
		log.Printf("CORS enabled for %v", cfg.HTTP.CORSAllowedOrigins)
	}

	if n, err := usersRepo.Count(context.Background()); err == nil && n == 0 {
		log.Printf("No users found. Sign up via POST /users/create or run the create-user command.")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Users:          usersRepo,
		Careers:        careersRepo,
		Courses:        coursesRepo,
		Ratings:        ratingsRepo,
		Enrollments:    enrollmentsRepo,
		Recommender:    recommender,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Cookies:        cookies,
		RateLimiter:    rateLimiter,
		TokenStore:     storePinger,
		AuditCleanup:   cleanup,
		Auditor:        auditService,
		Metrics:        metrics,
		CSRFKey:        csrfKey,
		SecureCookies:  cfg.Auth.SecureCookies,
		ReadOnly:       readOnly,
		Version:        version,

		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		bgCancel()
		cleanup.Stop()
		rateLimiter.Stop()
		auditService.Wait()
		if store != nil {
			if err := store.Close(); err != nil {
				log.Printf("Error closing token store: %v", err)
			}
		}
	}

	Serve(router, cfg, onShutdown)
}
