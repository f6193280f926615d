package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/insights"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/retriever"
	searchcore "codeberg.org/essayinsights/server/internal/search"
)

type mockSearcher struct {
	handleFn func(ctx context.Context, text string, limit int) (*searchcore.Response, error)
	called   bool
}

func (m *mockSearcher) HandleSearch(ctx context.Context, text string, limit int) (*searchcore.Response, error) {
	m.called = true
	return m.handleFn(ctx, text, limit)
}

var testLimits = Limits{DefaultLimit: 5, MaxLimit: 20, MaxQueryChars: 50}

func doSearch(t *testing.T, searcher Searcher, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router, searcher, testLimits)

	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestSearchHandlerSuccess(t *testing.T) {
	results := []essays.SearchResult{{ID: 1, Title: "A", URL: "https://a", Content: "c", Similarity: 0.5}}

	searcher := &mockSearcher{handleFn: func(_ context.Context, text string, limit int) (*searchcore.Response, error) {
		assert.Equal(t, "how to grow", text)
		assert.Equal(t, 5, limit)
		return &searchcore.Response{
			Results:  results,
			Insights: insights.ParseDigest("• One (A).\n• Two (A).\n• Three (A).", results),
		}, nil
	}}

	w := doSearch(t, searcher, `{"query": "  how to grow "}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "• One (A).\n• Two (A).\n• Three (A).", body["insights"])
	assert.NotContains(t, body, "degraded")

	essayList, ok := body["essays"].([]any)
	require.True(t, ok)
	require.Len(t, essayList, 1)

	first := essayList[0].(map[string]any)
	for _, key := range []string{"id", "title", "url", "content", "similarity"} {
		assert.Contains(t, first, key)
	}
}

func TestSearchHandlerEmptyResults(t *testing.T) {
	searcher := &mockSearcher{handleFn: func(context.Context, string, int) (*searchcore.Response, error) {
		return &searchcore.Response{
			Results:  []essays.SearchResult{},
			Insights: insights.ParseDigest(insights.DefaultInsights, nil),
		}, nil
	}}

	w := doSearch(t, searcher, `{"query": "zzz"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"essays":[]`)
}

func TestSearchHandlerLimit(t *testing.T) {
	var got int
	searcher := &mockSearcher{handleFn: func(_ context.Context, _ string, limit int) (*searchcore.Response, error) {
		got = limit
		return &searchcore.Response{Results: []essays.SearchResult{}, Insights: &insights.Digest{}}, nil
	}}

	w := doSearch(t, searcher, `{"query": "q", "limit": 3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, got)

	w = doSearch(t, searcher, `{"query": "q", "limit": 500}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, got)
}

func TestSearchHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"query": `},
		{"missing query", `{"limit": 3}`},
		{"blank query", `{"query": "   "}`},
		{"zero limit", `{"query": "q", "limit": 0}`},
		{"negative limit", `{"query": "q", "limit": -2}`},
		{"wrong type", `{"query": 5}`},
		{"too long", fmt.Sprintf(`{"query": "%s"}`, string(bytes.Repeat([]byte("a"), 51)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &mockSearcher{}

			w := doSearch(t, searcher, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation_error")
			assert.False(t, searcher.called)
		})
	}
}

func TestSearchHandlerErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("embed: %w", llm.ErrEmbedding), http.StatusInternalServerError},
		{fmt.Errorf("search: %w", retriever.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("digest: %w", insights.ErrSynthesis), http.StatusBadGateway},
		{fmt.Errorf("retrieval interrupted: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			searcher := &mockSearcher{handleFn: func(context.Context, string, int) (*searchcore.Response, error) {
				return nil, tt.err
			}}

			w := doSearch(t, searcher, `{"query": "q"}`)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSearchHandlerDegraded(t *testing.T) {
	searcher := &mockSearcher{handleFn: func(context.Context, string, int) (*searchcore.Response, error) {
		return &searchcore.Response{Results: []essays.SearchResult{{ID: 1, Title: "A"}}, Degraded: true}, nil
	}}

	w := doSearch(t, searcher, `{"query": "q"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Degraded)
	assert.Empty(t, body.Insights)
	assert.Len(t, body.Essays, 1)
}
