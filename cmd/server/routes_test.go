package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/sbomhub/server/internal/config"
	"codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.GET("/api/boom", func(c *gin.Context) { panic("secret detail") })
	router.GET("/boom", func(c *gin.Context) { panic("secret detail") })
	router.NoRoute(NotFoundHandler)
	return router
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNotFound(t *testing.T) {
	router := newTestRouter()

	w := serve(router, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeNotFound, body.Error)

	w = serve(router, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestRecovery(t *testing.T) {
	router := newTestRouter()

	w := serve(router, "/api/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeServerError, body.Error)

	w = serve(router, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestRequestLogger(t *testing.T) {
	capture, records := logger.NewCapture()
	prev := logger.SetDefault(capture)
	t.Cleanup(func() { logger.SetDefault(prev) })

	router := gin.New()
	router.Use(RequestLogger(), RecoveryMiddleware())
	router.GET("/work", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info("handler ran")
		c.Status(http.StatusAccepted)
	})
	router.GET("/boom", func(c *gin.Context) { panic("secret detail") })

	req := httptest.NewRequest(http.MethodGet, "/work", nil)
	req.Header.Set(requestIDHeader, "req-from-gateway")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "req-from-gateway", w.Header().Get(requestIDHeader))

	id, ok := records.Attr("handler ran", "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-from-gateway", id)

	status, ok := records.Attr("request completed", "status")
	require.True(t, ok)
	assert.Equal(t, "202", status)

	w = serve(router, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	generated := w.Header().Get(requestIDHeader)
	assert.Len(t, generated, 36)

	id, ok = records.Attr("panic recovered", "request_id")
	require.True(t, ok)
	assert.Equal(t, generated, id)
	assert.Equal(t, 1, records.Count(slog.LevelError))
}

func TestNewServer_WiresRoutes(t *testing.T) {
	cfg := &config.Config{
		Environment:        "testing",
		Port:               "0",
		BaseURL:            "http://localhost:8080",
		SessionSecret:      "session-secret-for-tests",
		JWTSecret:          "jwt-secret-for-tests",
		JWTTTL:             time.Hour,
		ProvisionTimeout:   time.Second,
		OAuthStateTTL:      time.Minute,
		CORSAllowedOrigins: []string{"http://localhost:8080"},
	}
	cfg.Google.ClientID = "client-id"
	cfg.Google.ClientSecret = "client-secret"
	cfg.Google.RedirectURL = "http://localhost:8080/callback"
	cfg.Kong.AdminURL = "http://127.0.0.1:1"
	cfg.Kong.Timeout = time.Second
	cfg.Kong.MaxAttempts = 1
	cfg.Kong.Backoff = time.Millisecond
	cfg.Kong.ConsumerTags = []string{"free"}

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.services.Close() }) //nolint:errcheck // test cleanup

	w := serve(srv.router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(srv.router, "/login")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.Contains(w.Header().Get("Location"), "accounts.google.com"))

	w = serve(srv.router, "/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve(srv.router, "/api/profile")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
