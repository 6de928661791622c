// Package refresh sequences backend regeneration with the follow-up reload
package refresh

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/interfaces"
)

// DefaultSettleDelay is the fixed wait between a successful regeneration
// response and the news reload. Regeneration is asynchronous on the backend
// and there is no completion signal, so this is a race-tolerant heuristic: the
// backend may still be working when the reload fires, and a second manual
// reload can be necessary.
const DefaultSettleDelay = 1000 * time.Millisecond

// Invalidator drops derived caches after a regeneration.
type Invalidator interface {
	Invalidate()
}

// Coordinator issues regeneration requests and reloads the news collection
// after the settle delay. It does not guard against overlapping calls; the
// Busy flag is advisory and re-entrant triggering is the caller's problem.
type Coordinator struct {
	client  interfaces.BackendClient
	feed    interfaces.FeedService
	impacts Invalidator
	logger  *common.Logger
	settle  time.Duration

	busy atomic.Bool
}

// Option configures the coordinator
type Option func(*Coordinator)

// WithSettleDelay overrides the settle delay (used by tests)
func WithSettleDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		c.settle = d
	}
}

// NewCoordinator creates a refresh coordinator. impacts may be nil when there
// is no derived cache to invalidate.
func NewCoordinator(client interfaces.BackendClient, feed interfaces.FeedService, impacts Invalidator, logger *common.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	c := &Coordinator{
		client:  client,
		feed:    feed,
		impacts: impacts,
		logger:  logger,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a regeneration is outstanding
func (c *Coordinator) Busy() bool {
	return c.busy.Load()
}

// Regenerate triggers backend regeneration. On success it waits the settle
// delay, invalidates derived caches and reloads the news collection. All
// failures are captured in the result; nothing escapes this boundary.
func (c *Coordinator) Regenerate(ctx context.Context) interfaces.RefreshResult {
	c.busy.Store(true)
	defer c.busy.Store(false)

	c.logger.Info().Msg("Regeneration requested")

	if err := c.client.Regenerate(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Regeneration failed")
		return interfaces.RefreshResult{Success: false, Message: err.Error()}
	}

	// Give the backend time to finish before refetching. There is no
	// completion signal, so a stale reload here is an accepted limitation.
	select {
	case <-time.After(c.settle):
	case <-ctx.Done():
		c.logger.Warn().Err(ctx.Err()).Msg("Settle wait interrupted, skipping reload")
		return interfaces.RefreshResult{Success: true, Message: "regenerated, reload skipped"}
	}

	if c.impacts != nil {
		c.impacts.Invalidate()
	}

	if err := c.feed.Load(ctx); err != nil {
		// The regeneration itself succeeded; the reload is a read-path
		// failure and the current view stays as it was.
		c.logger.Warn().Err(err).Msg("Post-regeneration reload failed")
		return interfaces.RefreshResult{Success: true, Message: "regenerated, reload failed: " + err.Error()}
	}

	c.logger.Info().Msg("Regeneration complete, news reloaded")
	return interfaces.RefreshResult{Success: true}
}

// Ensure Coordinator implements RefreshCoordinator
var _ interfaces.RefreshCoordinator = (*Coordinator)(nil)
