package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/staff"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext(t, ""))
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, defaultLimit, limit)
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext(t, "?offset=10&limit=25"))
		require.NoError(t, err)
		assert.Equal(t, 10, offset)
		assert.Equal(t, 25, limit)
	})

	t.Run("NegativeOffset", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext(t, "?offset=-1"))
		assert.Error(t, err)
	})

	t.Run("NonNumericOffset", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext(t, "?offset=abc"))
		assert.Error(t, err)
	})

	t.Run("LimitTooLarge", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext(t, "?limit=101"))
		assert.Error(t, err)
	})

	t.Run("ZeroLimit", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext(t, "?limit=0"))
		assert.Error(t, err)
	})
}
