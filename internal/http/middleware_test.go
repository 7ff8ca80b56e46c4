package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminRouter(t *testing.T, adminKeyHash string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AdminAuthMiddleware(adminKeyHash, testLogger()))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func hashAdminKey(t *testing.T, key string) string {
	t.Helper()

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	require.NoError(t, err)

	hash, err := hasher.Hash([]byte(key))
	require.NoError(t, err)
	return hash
}

func TestAdminAuthMiddleware(t *testing.T) {
	t.Run("ValidKey", func(t *testing.T) {
		router := adminRouter(t, hashAdminKey(t, "top-secret-admin-key"))

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(adminKeyHeader, "top-secret-admin-key")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("WrongKey", func(t *testing.T) {
		router := adminRouter(t, hashAdminKey(t, "top-secret-admin-key"))

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(adminKeyHeader, "wrong-key")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("MissingKey", func(t *testing.T) {
		router := adminRouter(t, hashAdminKey(t, "top-secret-admin-key"))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("NoHashConfigured", func(t *testing.T) {
		router := adminRouter(t, "")

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(adminKeyHeader, "any-key")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(1, 2, testLogger()))
	router.POST("/scan", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Burst of 2 allowed, third request rejected
	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("POST", "/scan", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/scan", nil))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "Single",
			input:    "https://admin.clinic.example",
			expected: []string{"https://admin.clinic.example"},
		},
		{
			name:     "MultipleWithWhitespace",
			input:    " https://a.example , https://b.example ",
			expected: []string{"https://a.example", "https://b.example"},
		},
		{
			name:     "TrailingComma",
			input:    "https://a.example,",
			expected: []string{"https://a.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrigins(tt.input))
		})
	}
}

func TestCreateCORSMiddleware(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://a.example", testLogger()))
	})

	t.Run("EnabledWithoutOrigins", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", testLogger()))
	})

	t.Run("Enabled", func(t *testing.T) {
		assert.NotNil(t, createCORSMiddleware(true, "https://a.example", testLogger()))
	})
}
