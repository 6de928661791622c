package feed

import (
	"context"
	"sync"

	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/interfaces"
	"github.com/ternlane/newsdesk/internal/models"
)

// Service holds the current news collection. The collection is never mutated
// in place; Load replaces it wholesale, readers see whichever collection was
// current when they looked.
type Service struct {
	client interfaces.BackendClient
	logger *common.Logger

	mu    sync.RWMutex
	items []models.NewsItem
}

// NewService creates a feed service backed by the given client
func NewService(client interfaces.BackendClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		client: client,
		logger: logger,
		items:  []models.NewsItem{},
	}
}

// Load fetches the news collection from the backend, normalizes every record
// and replaces the current collection. On any failure the current collection
// is left unchanged and the error is returned for the caller to log or
// surface.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.client.GetNews(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("News load failed, keeping current collection")
		return err
	}

	items := make([]models.NewsItem, 0, len(records))
	for _, raw := range records {
		items = append(items, models.Normalize(raw))
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info().Int("count", len(items)).Msg("News collection loaded")
	return nil
}

// Items returns the current collection in load order
func (s *Service) Items() []models.NewsItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Filtered applies a filter selection over the current collection
func (s *Service) Filtered(sel models.FilterSelection) []models.NewsItem {
	return ApplyFilter(s.Items(), sel)
}

// Tags returns the sorted distinct tag facets of the current collection
func (s *Service) Tags() []string {
	return ExtractTags(s.Items())
}

// Ensure Service implements FeedService
var _ interfaces.FeedService = (*Service)(nil)
