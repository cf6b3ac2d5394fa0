package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookmark-analytics/domain"
	"bookmark-analytics/service"
	"bookmark-analytics/tokenfilter"
	"bookmark-analytics/tokenize"
	"bookmark-analytics/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg, err := domain.NewAnalyticsConfig(2, domain.BucketDay, 0.3, 2, true)
	require.NoError(t, err)

	u := usecase.NewAnalyzeBookmarksUsecase(cfg, tokenize.NewDispatcher(true, nil), tokenfilter.New(), nil)
	return NewHandler(service.NewAnalyticsService(u, nil))
}

func doRequest(t *testing.T, h *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	h.Register(e)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Health(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestHandler_AnalyzeBookmarks(t *testing.T) {
	h := newTestHandler(t)

	body := `{"bookmarks":[
		{"id":"b1","text":"Learning golang concurrency","created_at":"2024-06-01T09:00:00Z"},
		{"id":"b2","text":"","created_at":"2024-06-01T10:00:00Z"}
	]}`

	rec := doRequest(t, h, http.MethodPost, "/v1/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.Len(t, result.Records, 2)
	assert.Equal(t, "b1", result.Records[0].RecordID)
	assert.False(t, result.Records[0].Skipped)
	assert.True(t, result.Records[1].Skipped)
	assert.Equal(t, 1, result.Stats.Processed)
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.NotEmpty(t, result.RunID)
}

func TestHandler_AnalyzeBookmarks_InvalidBody(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/v1/analyze", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_AnalyzeBookmarks_MissingID(t *testing.T) {
	h := newTestHandler(t)

	body := `{"bookmarks":[{"id":"","text":"no id","created_at":"2024-06-01T09:00:00Z"}]}`
	rec := doRequest(t, h, http.MethodPost, "/v1/analyze", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_TopWords(t *testing.T) {
	h := newTestHandler(t)

	analyzeBody := `{"bookmarks":[{"id":"b1","text":"docker docker compose","created_at":"2024-06-01T09:00:00Z"}]}`
	rec := doRequest(t, h, http.MethodPost, "/v1/analyze", analyzeBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/v1/stats/top-words?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp topWordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Words)
	assert.Equal(t, "docker", resp.Words[0].Token)
	assert.Equal(t, 2, resp.Words[0].Count)
}

func TestHandler_TopWords_TechOnly(t *testing.T) {
	h := newTestHandler(t)

	analyzeBody := `{"bookmarks":[{"id":"b1","text":"docker sandwiches recipe","created_at":"2024-06-01T09:00:00Z"}]}`
	rec := doRequest(t, h, http.MethodPost, "/v1/analyze", analyzeBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/v1/stats/top-words?tech_only=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp topWordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Words, 1)
	assert.Equal(t, "docker", resp.Words[0].Token)
	assert.True(t, resp.TechOnly)
}

func TestHandler_LatestStats(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/v1/stats/latest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	analyzeBody := `{"bookmarks":[{"id":"b1","text":"hello world","created_at":"2024-06-01T09:00:00Z"}]}`
	rec = doRequest(t, h, http.MethodPost, "/v1/analyze", analyzeBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/v1/stats/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Stats.Processed)
}

func TestHandler_TopWords_BeforeAnyRun(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/v1/stats/top-words", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_TopWords_InvalidLimit(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/v1/stats/top-words?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
