package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() (*gin.Engine, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	return gin.New(), httptest.NewRecorder()
}

func TestRequestID(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		router, w := newTestRouter()
		router.Use(RequestID())
		router.GET("/", func(c *gin.Context) {
			assert.NotEmpty(t, GetRequestID(c))
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("preserves a client-supplied id", func(t *testing.T) {
		router, w := newTestRouter()
		router.Use(RequestID())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-id-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestRecovery(t *testing.T) {
	router, w := newTestRouter()
	router.Use(RequestID(), Recovery())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]bool{"valid-key": true}

	newAuthRouter := func(validKeys map[string]bool) *gin.Engine {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(APIKeyAuth(validKeys))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("accepts a valid header key", func(t *testing.T) {
		router := newAuthRouter(keys)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(APIKeyHeader, "valid-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("accepts a valid query key", func(t *testing.T) {
		router := newAuthRouter(keys)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?api_key=valid-key", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a missing key", func(t *testing.T) {
		router := newAuthRouter(keys)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "detail")
	})

	t.Run("rejects an unknown key", func(t *testing.T) {
		router := newAuthRouter(keys)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(APIKeyHeader, "wrong")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes everything through when no keys configured", func(t *testing.T) {
		router := newAuthRouter(nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests under the limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)
		defer rl.Stop()

		for i := 0; i < 3; i++ {
			allowed, _ := rl.checkRateLimit("10.0.0.1")
			assert.True(t, allowed)
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Minute)
		defer rl.Stop()

		rl.checkRateLimit("10.0.0.2")
		rl.checkRateLimit("10.0.0.2")
		allowed, remaining := rl.checkRateLimit("10.0.0.2")

		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
	})

	t.Run("tracks identifiers independently", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		defer rl.Stop()

		rl.checkRateLimit("10.0.0.3")
		allowed, _ := rl.checkRateLimit("10.0.0.4")
		assert.True(t, allowed)
	})

	t.Run("resets after the window", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)
		defer rl.Stop()

		rl.checkRateLimit("10.0.0.5")
		allowed, _ := rl.checkRateLimit("10.0.0.5")
		assert.False(t, allowed)

		time.Sleep(15 * time.Millisecond)
		allowed, _ = rl.checkRateLimit("10.0.0.5")
		assert.True(t, allowed)
	})

	t.Run("middleware sets rate limit headers and 429 body", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rl := NewRateLimiter(1, time.Minute)
		defer rl.Stop()
		router := gin.New()
		router.Use(rl.RateLimit())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.Contains(t, second.Body.String(), "detail")
		assert.NotEmpty(t, second.Header().Get("Retry-After"))
	})
}
