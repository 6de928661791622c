// Package interfaces defines service contracts for Newsdesk
package interfaces

import (
	"context"

	"github.com/ternlane/newsdesk/internal/models"
)

// BackendClient provides access to the remote news backend API
type BackendClient interface {
	// GetNews retrieves the raw news records. The envelope shape has drifted
	// across backend versions; implementations must tolerate the payload at
	// .message.data, .data, or as the top-level array.
	GetNews(ctx context.Context) ([]map[string]any, error)

	// GetRecommendations retrieves the recommendations corpus
	GetRecommendations(ctx context.Context) ([]models.Recommendation, error)

	// Regenerate asks the backend to rebuild its recommendation data.
	// Returns nil when the backend accepted the request (2xx, or an explicit
	// success status in the body).
	Regenerate(ctx context.Context) error
}
