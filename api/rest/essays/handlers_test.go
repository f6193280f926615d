package essays

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	essaycore "codeberg.org/essayinsights/server/essays"
)

type mockLister struct {
	limit, offset int
	summaries     []essaycore.Summary
	err           error
}

func (m *mockLister) List(_ context.Context, limit, offset int) ([]essaycore.Summary, error) {
	m.limit, m.offset = limit, offset
	return m.summaries, m.err
}

func get(t *testing.T, lister Lister, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router, lister)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestListEssaysDefaults(t *testing.T) {
	lister := &mockLister{summaries: []essaycore.Summary{{ID: 1, Title: "A", URL: "https://a"}}}

	w := get(t, lister, "/essays")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 10, lister.limit)
	assert.Equal(t, 0, lister.offset)

	var body []essaycore.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, lister.summaries, body)
}

func TestListEssaysClampsParams(t *testing.T) {
	lister := &mockLister{summaries: []essaycore.Summary{}}

	w := get(t, lister, "/essays?limit=1000&offset=-5")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 100, lister.limit)
	assert.Equal(t, 0, lister.offset)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListEssaysRejectsBadParams(t *testing.T) {
	w := get(t, &mockLister{}, "/essays?offset=ten")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEssaysStoreError(t *testing.T) {
	w := get(t, &mockLister{err: errors.New("connection refused")}, "/essays")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
