package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", &buf)

	l.Debug("hidden")
	l.Info("visible", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "essayinsights", entry["service"])
}

func TestNewDevelopmentIncludesDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New("development", &buf)

	l.Debug("debug line")

	assert.Contains(t, buf.String(), "debug line")
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	custom := New("development", &buf)
	ctx := WithContext(context.Background(), custom)

	assert.Equal(t, custom, FromContext(ctx))
}

func TestMiddlewareSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(Middleware())
	router.GET("/x", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "6f1c2a4e-8d3b-4c1a-9e7f-0b2d4c6e8a10")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "6f1c2a4e-8d3b-4c1a-9e7f-0b2d4c6e8a10", seen)
}

func TestMiddlewareReplacesMalformedRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(Middleware())
	router.GET("/x", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})

	for _, id := range []string{"abc-123", "x\nlevel=ERROR msg=forged", strings.Repeat("a", 4096)} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, id, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	}
}
