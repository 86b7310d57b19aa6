package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouter_ReadOnlyMode(t *testing.T) {
	app := newTestApp(t, appOptions{readOnly: true})
	app.register(t, "jane")

	// Sign-in keeps working so users can still browse their own data
	w := app.doJSON(http.MethodPost, "/users/login_token", gin.H{"username": "jane", "password": testPassword}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	token := decode[TokenResponse](t, w).AccessToken

	w = app.doJSON(http.MethodGet, "/users/me", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.doJSON(http.MethodPost, "/careers/create", gin.H{"title": "Backend"}, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = app.doJSON(http.MethodPost, "/users/create", gin.H{
		"full_name": "John", "username": "john", "email": "john@x.com", "password": testPassword,
	}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	app := newTestApp(t, appOptions{csrf: true, origins: []string{"https://app.example.com"}})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/careers/create", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-CSRF-Token")
		return serve(app, req)
	}

	w := preflight("https://app.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Csrf-Token")

	assert.Equal(t, http.StatusForbidden, preflight("https://evil.example.com").Code)
}

func TestRouter_CORSCredentialedRequest(t *testing.T) {
	app := newTestApp(t, appOptions{csrf: true, origins: []string{"https://app.example.com"}})
	authCookie := browserLogin(t, app, "jane")
	token, csrfCookies := fetchCSRFToken(t, app, authCookie)

	req := cookieJSONRequest(http.MethodPost, "/careers/create", gin.H{"title": "Backend"}, append(csrfCookies, authCookie)...)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("X-CSRF-Token", token)
	w := serve(app, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Set-Cookie")
}

func TestRouter_CORSDisabledByDefault(t *testing.T) {
	app := newTestApp(t, appOptions{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := serve(app, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
