// Package backend provides a client for the remote news backend API
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/interfaces"
	"github.com/ternlane/newsdesk/internal/models"
)

const (
	DefaultBaseURL   = "http://127.0.0.1:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the BackendClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new backend client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a backend API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// do performs a rate-limited request and returns the response body for 2xx
// statuses. Non-2xx statuses become an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("Backend API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(data),
			Endpoint:   path,
		}
	}

	return data, resp.StatusCode, nil
}

// GetNews retrieves the raw news records, tolerating all historical envelope
// shapes: {"message": {"data": [...]}}, {"data": [...]}, or a bare array.
func (c *Client) GetNews(ctx context.Context) ([]map[string]any, error) {
	data, _, err := c.do(ctx, http.MethodGet, "/api/news", nil)
	if err != nil {
		return nil, err
	}

	records, err := parseNewsEnvelope(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}

	c.logger.Debug().Int("count", len(records)).Msg("Backend news received")
	return records, nil
}

func parseNewsEnvelope(data []byte) ([]map[string]any, error) {
	var envelope struct {
		Message struct {
			Data []map[string]any `json:"data"`
		} `json:"message"`
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message.Data != nil {
			return envelope.Message.Data, nil
		}
		if envelope.Data != nil {
			return envelope.Data, nil
		}
	}

	// Oldest contract: the payload is the top-level array.
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unrecognized envelope shape: %w", err)
	}
	return records, nil
}

// GetRecommendations retrieves the recommendations corpus. The current
// contract is {"status": "success", "data": [...], "count": n}; a bare array
// is accepted for backward compatibility.
func (c *Client) GetRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	data, _, err := c.do(ctx, http.MethodGet, "/api/recommendations", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Status string                  `json:"status"`
		Data   []models.Recommendation `json:"data"`
		Count  int                     `json:"count"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var corpus []models.Recommendation
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations response: %w", err)
	}
	return corpus, nil
}

// Regenerate asks the backend to rebuild its recommendation data. The request
// carries no body beyond the content-type header. A non-2xx status is always
// a failure. Within 2xx the body check is deliberately lenient: an explicit
// "success" status field or no status field at all both count as accepted —
// some backend versions omit the body-level status entirely.
func (c *Client) Regenerate(ctx context.Context) error {
	const path = "/api/regenerate-recommendations"

	data, statusCode, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(nil))
	if err != nil {
		return err
	}

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			return fmt.Errorf("failed to decode regenerate response: %w", err)
		}
	}

	if body.Status != "" && body.Status != "success" {
		return &APIError{
			StatusCode: statusCode,
			Message:    body.Message,
			Endpoint:   path,
		}
	}

	return nil
}

// Ensure Client implements BackendClient
var _ interfaces.BackendClient = (*Client)(nil)
