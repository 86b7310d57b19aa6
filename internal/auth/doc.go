// Package auth provides authentication for the application.
//
// Users log in with username and password. A successful login mints a signed
// JWT carrying {id, username, exp, iat, jti}. The token travels either in the
// Authorization header ("Bearer <token>") for API clients or in the
// Authorization cookie (same value) for browser form flows. The header wins
// when both are present.
//
// # Configuration
//
//	OAUTH2_SECRET_KEY=<hex>          # HMAC signing secret, auto-generated if empty
//	ALGORITHM=HS256                  # HS256, HS384 or HS512
//	ACCESS_TOKEN_EXPIRE_WEEKS=1      # token and cookie lifetime
//	AUTH_COOKIE_DOMAIN=example.com   # cookie domain
//	AUTH_BCRYPT_COST=12              # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true         # HTTPS-only cookies
//	REDIS_ADDR=localhost:6379        # enables logout revocation
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	issuer, _ := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.TokenTTL)
//	authService := auth.NewService(usersRepo, issuer, revoker, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, auth.NewCookieHelper(cfg.Auth))
//	protected := router.Group("/", authMiddleware.RequireAuth())
//
// Extract the caller in handlers:
//
//	user := auth.CurrentUser(c)
//
// Token failures are distinct errors (ErrTokenExpired, ErrInvalidSignature,
// ErrTokenMalformed); Service.Authorize wraps all of them together with
// entities.ErrUnauthenticated.
package auth
