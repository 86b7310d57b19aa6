package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Redis
		Audit
		Recommender
		Metrics
	}

	HTTP struct {
		Port int32
		Host string

		// Browser origins allowed to call the API with credentials; empty disables CORS
		CORSAllowedOrigins []string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnly                 bool // reject writes except sign-in and sign-out
	}

	Database struct {
		Driver DatabaseDriver
		Path   string // sqlite file
		DSN    string // postgres connection string
	}

	Auth struct {
		SecretKey     string
		Algorithm     string // HS256, HS384 or HS512
		TokenTTL      time.Duration
		CookieName    string
		CookieDomain  string
		BcryptCost    int
		SecureCookies bool // Set to false for local dev without HTTPS
		CSRFEnabled   bool

		// Rate limiting configuration
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}

	Redis struct {
		Addr     string // empty disables token revocation
		Password string
		DB       int
	}

	Audit struct {
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}

	Recommender struct {
		ModelPath string
	}

	Metrics struct {
		Enabled bool
	}
)

// postgresDSN builds a connection string from the legacy DB_USER_PASSW and DB_NAME
// variables when DATABASE_DSN is not set.
func postgresDSN(v *viper.Viper) string {
	if dsn := v.GetString("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	userPass := v.GetString("DB_USER_PASSW")
	name := v.GetString("DB_NAME")
	if userPass == "" || name == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s@localhost/%s", userPass, name)
}

// splitList parses a comma separated variable, dropping blank entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")
	v.SetDefault("recommender_model_path", "")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("read_only_mode", false)

	// Auth defaults
	v.SetDefault("oauth2_secret_key", "") // Auto-generated if empty
	v.SetDefault("algorithm", DefaultAlgorithm)
	v.SetDefault("access_token_expire_weeks", 1)
	v.SetDefault("auth_cookie_name", DefaultCookieName)
	v.SetDefault("auth_cookie_domain", "")
	v.SetDefault("auth_bcrypt_cost", 12)      // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true) // HTTPS-only cookies
	v.SetDefault("csrf_enabled", false)
	v.SetDefault("auth_max_login_attempts", 5)    // Max failed attempts
	v.SetDefault("auth_rate_limit_window", "15m") // Window for counting attempts
	v.SetDefault("auth_lockout_duration", "30m")  // Lockout duration

	// Redis defaults
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnly:                 v.GetBool("READ_ONLY_MODE"),
		},
		Database: Database{
			Driver: DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    postgresDSN(v),
		},
		Auth: Auth{
			SecretKey:        v.GetString("OAUTH2_SECRET_KEY"),
			Algorithm:        strings.ToUpper(v.GetString("ALGORITHM")),
			TokenTTL:         time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_WEEKS")) * Week,
			CookieName:       v.GetString("AUTH_COOKIE_NAME"),
			CookieDomain:     v.GetString("AUTH_COOKIE_DOMAIN"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFEnabled:      v.GetBool("CSRF_ENABLED"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Recommender: Recommender{
			ModelPath: v.GetString("RECOMMENDER_MODEL_PATH"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}

// Validate reports configuration that cannot produce a working server.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN (or DB_USER_PASSW and DB_NAME) must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported ALGORITHM %q: only HMAC algorithms are allowed", c.Auth.Algorithm)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_WEEKS must be positive")
	}

	// Credentialed CORS needs explicit origins
	for _, origin := range c.HTTP.CORSAllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS must list explicit origins, not *")
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS origin %q must start with http:// or https://", origin)
		}
	}
	return nil
}
