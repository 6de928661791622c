package impact

import (
	"context"
	"errors"
	"testing"

	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/models"
)

// --- Mocks ---

type mockBackendClient struct {
	corpus []models.Recommendation
	err    error
	calls  int
}

func (m *mockBackendClient) GetNews(_ context.Context) ([]map[string]any, error) {
	return nil, nil
}

func (m *mockBackendClient) GetRecommendations(_ context.Context) ([]models.Recommendation, error) {
	m.calls++
	return m.corpus, m.err
}

func (m *mockBackendClient) Regenerate(_ context.Context) error {
	return nil
}

func TestClientsFor_MatchesAndCaches(t *testing.T) {
	client := &mockBackendClient{corpus: []models.Recommendation{
		{Ticker: "AAPL", ClientName: "Acme Capital", News: "Topic: Apple"},
	}}
	svc := NewService(client, common.NewSilentLogger())

	first := svc.ClientsFor(context.Background(), "AAPL", "")
	if len(first) != 1 {
		t.Fatalf("first lookup = %v, want one impact", first)
	}

	second := svc.ClientsFor(context.Background(), "AAPL", "")
	if len(second) != 1 {
		t.Fatalf("second lookup = %v", second)
	}
	if client.calls != 1 {
		t.Errorf("backend calls = %d, want 1 (second lookup served from cache)", client.calls)
	}
}

func TestClientsFor_DistinctKeysFetchIndependently(t *testing.T) {
	client := &mockBackendClient{}
	svc := NewService(client, common.NewSilentLogger())

	svc.ClientsFor(context.Background(), "AAPL", "headline one")
	svc.ClientsFor(context.Background(), "AAPL", "headline two")

	if client.calls != 2 {
		t.Errorf("backend calls = %d, want 2 for distinct ticker+headline keys", client.calls)
	}
}

func TestClientsFor_BackendFailureDegradesToEmpty(t *testing.T) {
	client := &mockBackendClient{err: errors.New("backend unreachable")}
	svc := NewService(client, common.NewSilentLogger())

	got := svc.ClientsFor(context.Background(), "AAPL", "")
	if got == nil || len(got) != 0 {
		t.Errorf("failed fetch = %v, want empty non-nil list", got)
	}

	// Failures must not be cached; the next lookup retries.
	svc.ClientsFor(context.Background(), "AAPL", "")
	if client.calls != 2 {
		t.Errorf("backend calls = %d, want failed lookups to retry", client.calls)
	}
}

func TestInvalidate_DropsCache(t *testing.T) {
	client := &mockBackendClient{corpus: []models.Recommendation{
		{Ticker: "AAPL", ClientName: "Acme Capital", News: "Topic: Apple"},
	}}
	svc := NewService(client, common.NewSilentLogger())

	svc.ClientsFor(context.Background(), "AAPL", "")
	svc.Invalidate()
	svc.ClientsFor(context.Background(), "AAPL", "")

	if client.calls != 2 {
		t.Errorf("backend calls = %d, want refetch after Invalidate", client.calls)
	}
}
