package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	// Empty variables count as unset, so the host environment cannot leak in
	for _, key := range []string{"PORT", "DATABASE_DRIVER", "DATABASE_PATH", "ALGORITHM", "ACCESS_TOKEN_EXPIRE_WEEKS", "AUTH_COOKIE_NAME", "AUTH_RATE_LIMIT_WINDOW", "AUDIT_RETENTION_DAYS", "READ_ONLY_MODE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, int32(8000), cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "HS256", cfg.Auth.Algorithm)
	assert.Equal(t, Week, cfg.Auth.TokenTTL)
	assert.Equal(t, DefaultCookieName, cfg.Auth.CookieName)
	assert.Equal(t, 15*time.Minute, cfg.Auth.RateLimitWindow)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.False(t, cfg.Global.ReadOnly)
	assert.Empty(t, cfg.HTTP.CORSAllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_WEEKS", "2")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DB_USER_PASSW", "app:pw")
	t.Setenv("DB_NAME", "careers")
	t.Setenv("READ_ONLY_MODE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, http://localhost:5173,")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "HS512", cfg.Auth.Algorithm)
	assert.Equal(t, 2*Week, cfg.Auth.TokenTTL)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://app:pw@localhost/careers", cfg.Database.DSN)
	assert.True(t, cfg.Global.ReadOnly)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.HTTP.CORSAllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_DSNOverridesLegacyVariables(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://explicit/db")
	t.Setenv("DB_USER_PASSW", "app:pw")
	t.Setenv("DB_NAME", "careers")

	assert.Equal(t, "postgres://explicit/db", NewConfig().Database.DSN)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Database = Database{Driver: DriverSQLite, Path: "x.db"}
		cfg.Auth.Algorithm = "HS256"
		cfg.Auth.TokenTTL = Week
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, "DATABASE_PATH"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "DATABASE_DSN"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unsupported DATABASE_DRIVER"},
		{"asymmetric algorithm", func(c *Config) { c.Auth.Algorithm = "RS256" }, "only HMAC"},
		{"none algorithm", func(c *Config) { c.Auth.Algorithm = "NONE" }, "only HMAC"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "ACCESS_TOKEN_EXPIRE_WEEKS"},
		{"wildcard cors origin", func(c *Config) { c.HTTP.CORSAllowedOrigins = []string{"*"} }, "explicit origins"},
		{"cors origin without scheme", func(c *Config) { c.HTTP.CORSAllowedOrigins = []string{"app.example.com"} }, "http:// or https://"},
	}

	assert.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
