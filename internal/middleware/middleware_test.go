package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"user_details/internal/auth"
	"user_details/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-middleware"

func setupAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(secret))
	router.GET("/whoami", func(c *gin.Context) {
		userID, err := auth.GetUserIDFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := auth.GenerateAccessToken(4711, testSecret, time.Minute)
	require.NoError(t, err)
	expired, err := auth.GenerateAccessToken(4711, testSecret, -time.Minute)
	require.NoError(t, err)
	otherSecret, err := auth.GenerateAccessToken(4711, "other-secret", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedCode   int
		expectedInBody string
	}{
		{name: "Valid token", header: "Bearer " + valid, expectedCode: http.StatusOK, expectedInBody: "4711"},
		{name: "Missing header", header: "", expectedCode: http.StatusUnauthorized, expectedInBody: "Authorization header required"},
		{name: "Wrong scheme", header: "Basic " + valid, expectedCode: http.StatusUnauthorized, expectedInBody: "Invalid authorization format"},
		{name: "Expired token", header: "Bearer " + expired, expectedCode: http.StatusUnauthorized, expectedInBody: "Token expired"},
		{name: "Wrong secret", header: "Bearer " + otherSecret, expectedCode: http.StatusUnauthorized, expectedInBody: "Invalid token"},
	}

	router := setupAuthRouter(testSecret)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedInBody)
		})
	}
}

func TestPrometheusMiddleware(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(PrometheusMiddleware(metrics))
	router.GET("/users/:userId", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for _, path := range []string{"/users/1", "/users/2", "/nope"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/users/:userId", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("Propagates caller ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "test-req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "test-req-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "test-req-123", w.Body.String())
	})

	t.Run("Generates ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		generated := w.Header().Get(RequestIDHeader)
		assert.Len(t, generated, 36)
		assert.Equal(t, generated, w.Body.String())
	})
}
