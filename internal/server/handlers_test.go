package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlane/newsdesk/internal/app"
	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/feed"
	"github.com/ternlane/newsdesk/internal/interfaces"
	"github.com/ternlane/newsdesk/internal/models"
)

// --- Mocks ---

type stubClient struct {
	records []map[string]any
	corpus  []models.Recommendation
}

func (s *stubClient) GetNews(_ context.Context) ([]map[string]any, error) {
	return s.records, nil
}

func (s *stubClient) GetRecommendations(_ context.Context) ([]models.Recommendation, error) {
	return s.corpus, nil
}

func (s *stubClient) Regenerate(_ context.Context) error {
	return nil
}

type stubImpact struct {
	impacts []models.ClientImpact
}

func (s *stubImpact) ClientsFor(_ context.Context, _, _ string) []models.ClientImpact {
	return s.impacts
}

type stubRefresh struct {
	busy   bool
	result interfaces.RefreshResult
}

func (s *stubRefresh) Regenerate(_ context.Context) interfaces.RefreshResult { return s.result }

func (s *stubRefresh) Busy() bool { return s.busy }

func newTestServer(t *testing.T, client *stubClient, imp *stubImpact, ref *stubRefresh) *Server {
	t.Helper()
	if imp == nil {
		imp = &stubImpact{}
	}
	if ref == nil {
		ref = &stubRefresh{}
	}
	a := &app.App{
		Config:  common.NewDefaultConfig(),
		Logger:  common.NewSilentLogger(),
		Feed:    feed.NewService(client, common.NewSilentLogger()),
		Impact:  imp,
		Refresh: ref,
	}
	return NewServer(a)
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleNews_ReturnsNormalizedItems(t *testing.T) {
	client := &stubClient{records: []map[string]any{
		{"ticker": "AAPL", "headline": "Apple unveils spatial SDK", "tag": "Tech", "sentiment_score": 0.4},
		{"ticker": "TSLA", "title": "Tesla recall", "tag": "Tech, EV", "sentiment_score": -0.2},
	}}
	s := newTestServer(t, client, nil, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/news")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string            `json:"status"`
		Data   []models.NewsItem `json:"data"`
		Count  int               `json:"count"`
		Tags   []string          `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Apple unveils spatial SDK", resp.Data[0].Title)
	assert.Equal(t, []string{"EV", "Tech"}, resp.Tags)
}

func TestHandleNews_FilterQuery(t *testing.T) {
	client := &stubClient{records: []map[string]any{
		{"title": "up", "tag": "Tech", "sentiment_score": 0.4},
		{"title": "down", "tag": "Tech", "sentiment_score": -0.4},
		{"title": "bond", "tag": "Bonds", "sentiment_score": -0.1},
	}}
	s := newTestServer(t, client, nil, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/news?negative=true&tag=Tech")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp newsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "down", resp.Data[0].Title)
}

func TestHandleNews_BothTogglesReturnEverything(t *testing.T) {
	client := &stubClient{records: []map[string]any{
		{"title": "up", "sentiment_score": 0.4},
		{"title": "down", "sentiment_score": -0.4},
	}}
	s := newTestServer(t, client, nil, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/news?positive=true&negative=true")
	var resp newsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestHandleNewsTags(t *testing.T) {
	client := &stubClient{records: []map[string]any{
		{"title": "a", "tag": "Tech, Bonds"},
		{"title": "b", "tag": "bonds"},
	}}
	s := newTestServer(t, client, nil, nil)

	// Populate the collection first.
	doRequest(t, s, http.MethodGet, "/api/news")

	rec := doRequest(t, s, http.MethodGet, "/api/news/tags")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Bonds", "Tech", "bonds"}, resp.Data)
}

func TestHandleClients(t *testing.T) {
	imp := &stubImpact{impacts: []models.ClientImpact{
		{Name: "Acme Capital", Impact: "Topic: Apple..."},
	}}
	s := newTestServer(t, &stubClient{}, imp, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/clients?ticker=AAPL&headline=Apple+unveils")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []models.ClientImpact `json:"data"`
		Count int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Acme Capital", resp.Data[0].Name)
}

func TestHandleClients_MissingTicker(t *testing.T) {
	s := newTestServer(t, &stubClient{}, nil, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/clients")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRegenerate_Success(t *testing.T) {
	ref := &stubRefresh{result: interfaces.RefreshResult{Success: true}}
	s := newTestServer(t, &stubClient{}, nil, ref)

	rec := doRequest(t, s, http.MethodPost, "/api/regenerate")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp interfaces.RefreshResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestHandleRegenerate_Failure(t *testing.T) {
	ref := &stubRefresh{result: interfaces.RefreshResult{Success: false, Message: "backend API error: regeneration unavailable (status: 502, endpoint: /api/regenerate-recommendations)"}}
	s := newTestServer(t, &stubClient{}, nil, ref)

	rec := doRequest(t, s, http.MethodPost, "/api/regenerate")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp interfaces.RefreshResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestHandleRegenerate_BusyConflict(t *testing.T) {
	ref := &stubRefresh{busy: true}
	s := newTestServer(t, &stubClient{}, nil, ref)

	rec := doRequest(t, s, http.MethodPost, "/api/regenerate")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleRegenerate_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &stubClient{}, nil, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/regenerate")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &stubClient{}, nil, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestCorrelationIDHeader(t *testing.T) {
	s := newTestServer(t, &stubClient{}, nil, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/health")
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &stubClient{}, nil, nil)
	rec := doRequest(t, s, http.MethodOptions, "/api/news")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
