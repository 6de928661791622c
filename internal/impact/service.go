package impact

import (
	"context"
	"sync"

	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/interfaces"
	"github.com/ternlane/newsdesk/internal/models"
)

// Service resolves client impacts against the recommendations corpus, with a
// read-through cache keyed by ticker+headline. Entries live for the process
// lifetime; the cache is dropped wholesale when invalidated.
type Service struct {
	client interfaces.BackendClient
	logger *common.Logger

	mu    sync.Mutex
	cache map[string][]models.ClientImpact
}

// NewService creates an impact service backed by the given client
func NewService(client interfaces.BackendClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		client: client,
		logger: logger,
		cache:  make(map[string][]models.ClientImpact),
	}
}

// ClientsFor returns the deduplicated client-impact list for a ticker and
// optional headline. Backend failures degrade to an empty list; they are
// logged, never propagated.
func (s *Service) ClientsFor(ctx context.Context, ticker, headline string) []models.ClientImpact {
	key := ticker + "\x00" + headline

	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	corpus, err := s.client.GetRecommendations(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Recommendations fetch failed")
		return []models.ClientImpact{}
	}

	impacts := MatchClients(ticker, headline, corpus)

	s.mu.Lock()
	s.cache[key] = impacts
	s.mu.Unlock()

	s.logger.Debug().
		Str("ticker", ticker).
		Int("corpus", len(corpus)).
		Int("matches", len(impacts)).
		Msg("Client impacts resolved")
	return impacts
}

// Invalidate drops all cached impact lists. Called after a regeneration so
// the next lookup sees the rebuilt corpus.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string][]models.ClientImpact)
	s.mu.Unlock()
}

// Ensure Service implements ImpactService
var _ interfaces.ImpactService = (*Service)(nil)
