package interfaces

import (
	"context"

	"github.com/ternlane/newsdesk/internal/models"
)

// FeedService owns the in-memory news collection
type FeedService interface {
	// Load fetches and normalizes the news collection, replacing the current
	// one wholesale. On failure the current collection is left unchanged.
	Load(ctx context.Context) error

	// Items returns the current collection in load order
	Items() []models.NewsItem

	// Filtered applies a filter selection over the current collection
	Filtered(sel models.FilterSelection) []models.NewsItem

	// Tags returns the sorted distinct tag facets of the current collection
	Tags() []string

	// RenderSentimentChart renders a PNG sentiment distribution for the
	// current collection
	RenderSentimentChart() ([]byte, error)
}

// ImpactService maps stories to impacted clients
type ImpactService interface {
	// ClientsFor returns the deduplicated client-impact list for a
	// ticker/headline pair. Read failures degrade to an empty list.
	ClientsFor(ctx context.Context, ticker, headline string) []models.ClientImpact
}

// RefreshResult reports the outcome of a regeneration request
type RefreshResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RefreshCoordinator sequences backend regeneration and the follow-up reload
type RefreshCoordinator interface {
	// Regenerate triggers backend regeneration and, on success, reloads the
	// news collection after the settle delay. Never panics past this boundary.
	Regenerate(ctx context.Context) RefreshResult

	// Busy reports whether a regeneration is outstanding. The guard against
	// re-entrant triggering belongs to the caller.
	Busy() bool
}
