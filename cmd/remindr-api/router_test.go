package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/remindr/backend/internal/config"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/middleware"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T, burst int) *gin.Engine {
	t.Helper()
	repos, err := repository.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "remindr.db"))
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Env:                "test",
			CORSAllowedOrigins: []string{"https://app.remindr.dev"},
			RateLimitRPS:       1,
			RateLimitBurst:     burst,
		},
		Storage: config.StorageConfig{Driver: config.DriverSQLite},
	}
	logCfg := logger.DefaultConfig()
	logCfg.Output = io.Discard
	log, err := logger.New(logCfg)
	require.NoError(t, err)

	a := newApp(cfg, log, repos)
	router, limiter := newRouter(a)
	t.Cleanup(func() {
		limiter.Stop()
		a.Close()
	})
	return router
}

func serve(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterMiddlewareStack(t *testing.T) {
	router := newTestApp(t, 100)

	w := serve(router, http.MethodGet, "/api/v1/categories", "", map[string]string{"Origin": "https://app.remindr.dev"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "https://app.remindr.dev", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestApp(t, 100)
	serve(router, http.MethodGet, "/health", "", nil)

	w := serve(router, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `remindr_http_requests_total{method="GET",route="/health",status="200"}`)
}

func TestRouterLogIdempotency(t *testing.T) {
	router := newTestApp(t, 100)

	w := serve(router, http.MethodPost, "/api/v1/reminders",
		`{"title":"Vitamins","category":"health","scheduled_date":"2025-06-01","scheduled_time":"08:00"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	key := map[string]string{middleware.IdempotencyKeyHeader: "0b6a3d2e-5f41-4c8e-9d27-6a1f0e3b9c45"}
	body := `{"reminder_id":1,"action":"completed","timestamp":"2025-06-18T09:00:00Z"}`

	first := serve(router, http.MethodPost, "/api/v1/logs", body, key)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := serve(router, http.MethodPost, "/api/v1/logs", body, key)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	w = serve(router, http.MethodGet, "/api/v1/logs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, bytes.Count(w.Body.Bytes(), []byte(`"id":`)))
}

func TestRouterRateLimitsAPI(t *testing.T) {
	router := newTestApp(t, 2)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/categories", "", nil).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/api/v1/categories", "", nil).Code)

	// Health checks sit outside the limited group
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "", nil).Code)
}
