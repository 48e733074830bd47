package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestForwardedHeadersNeedTrustedProxy(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		headers map[string]string
		want    string
	}{
		{name: "untrusted forwarded for", headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, want: "192.0.2.1"},
		{name: "untrusted real ip", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, want: "192.0.2.1"},
		{name: "trusted forwarded for", trusted: []string{"192.0.2.0/24"}, headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 192.0.2.5"}, want: "203.0.113.7"},
		{name: "socket", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			require.NoError(t, router.SetTrustedProxies(tt.trusted))
			router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	router := gin.New()
	router.Use(RateLimiter(1, 1))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("192.0.2.1"))
	assert.Equal(t, http.StatusNoContent, hit("192.0.2.2"))
}

func TestRateLimiterIgnoresForgedForwardedFor(t *testing.T) {
	store := newLimiterStore(1, 1)
	router := gin.New()
	require.NoError(t, router.SetTrustedProxies(nil))
	router.Use(rateLimiter(store))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	limited := 0
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 99, limited)
	assert.Equal(t, 1, store.size())
}

func TestLimiterStoreEvictsIdleVisitors(t *testing.T) {
	store := newLimiterStore(60, 5)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		store.get(fmt.Sprintf("198.51.100.%d", i))
	}
	assert.Equal(t, 50, store.size())

	now = now.Add(30 * time.Second)
	store.get("192.0.2.1")
	assert.Equal(t, 51, store.size())

	now = now.Add(45 * time.Second)
	store.get("192.0.2.2")
	assert.Equal(t, 2, store.size(), "only visitors seen within the idle window remain")
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

func TestRecoveryReturnsJSON(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, rec.Body.String())
}
