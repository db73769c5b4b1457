package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geotrack-backend/internal/common/logger"
)

func newMiddlewareRouter(t *testing.T, corsOrigin string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.Use(LoggerMiddleware(logger.NewTestLogger(t)))
	engine.Use(SecurityHeadersMiddleware())
	engine.Use(CORSMiddleware(corsOrigin))

	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func doRequest(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// ==========================
// Request ID Tests
// ==========================

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	engine := newMiddlewareRouter(t, "")
	w := doRequest(engine, http.MethodGet, "/ping", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_ProxySuppliedIsKept(t *testing.T) {
	engine := newMiddlewareRouter(t, "")
	w := doRequest(engine, http.MethodGet, "/ping", map[string]string{
		"X-Request-ID": "proxy-abc-123",
	})

	assert.Equal(t, "proxy-abc-123", w.Header().Get("X-Request-ID"))
}

// ==========================
// Security Header Tests
// ==========================

func TestSecurityHeaders(t *testing.T) {
	engine := newMiddlewareRouter(t, "")
	w := doRequest(engine, http.MethodGet, "/ping", nil)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "same-origin", w.Header().Get("Cross-Origin-Resource-Policy"))
	assert.NotEmpty(t, w.Header().Get("Permissions-Policy"))
}

// ==========================
// CORS Tests
// ==========================

func TestCORS_ReflectsOriginWhenUnrestricted(t *testing.T) {
	engine := newMiddlewareRouter(t, "")
	w := doRequest(engine, http.MethodGet, "/ping", map[string]string{
		"Origin": "https://landing.cliente.cl",
	})

	assert.Equal(t, "https://landing.cliente.cl", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORS_ConfiguredOriginOnly(t *testing.T) {
	engine := newMiddlewareRouter(t, "https://www.geotrack.cl")

	w := doRequest(engine, http.MethodGet, "/ping", map[string]string{
		"Origin": "https://www.geotrack.cl",
	})
	assert.Equal(t, "https://www.geotrack.cl", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(engine, http.MethodGet, "/ping", map[string]string{
		"Origin": "https://otro-sitio.cl",
	})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	// The request itself still succeeds; the browser enforces the policy.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	engine := newMiddlewareRouter(t, "")
	w := doRequest(engine, http.MethodOptions, "/ping", map[string]string{
		"Origin":                        "https://landing.cliente.cl",
		"Access-Control-Request-Method": "POST",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestCORS_NoOriginHeaderForNonBrowserCallers(t *testing.T) {
	engine := newMiddlewareRouter(t, "")
	w := doRequest(engine, http.MethodGet, "/ping", nil)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)
}
