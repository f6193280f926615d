package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	assert.Equal(t, Params{Limit: 10, Offset: 0}, DefaultParams(0, 0, 10, 100))
	assert.Equal(t, Params{Limit: 100, Offset: 5}, DefaultParams(500, 5, 10, 100))
	assert.Equal(t, Params{Limit: 10, Offset: 0}, DefaultParams(-3, -7, 10, 100))
}

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/essays?limit=20&offset=40", nil)

	params, err := FromQuery(c, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, Params{Limit: 20, Offset: 40}, params)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/essays?limit=abc", nil)
	_, err = FromQuery(c, 10, 100)
	assert.Error(t, err)
}
