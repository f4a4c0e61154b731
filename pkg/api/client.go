package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/user-analytics/pkg/cache"
	"github.com/Sternrassler/user-analytics/pkg/logging"
	"github.com/rs/zerolog"
)

// Client is the analytics source API client.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API base URL (REQUIRED).
	BaseURL string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// MaxRetries is the total number of attempts per request (>= 1).
	MaxRetries int

	// BaseBackoff is the wait after the first failed attempt; doubles per
	// further failure.
	BaseBackoff time.Duration

	// PageSize is the _limit pagination parameter.
	PageSize int

	// MaxPages caps the number of pages FetchAll requests per resource.
	MaxPages int

	// UserAgent header sent with every request.
	UserAgent string

	// Cache is the optional Redis page cache. Nil disables caching.
	Cache *cache.Manager
}

// DefaultConfig returns the standard configuration for the analytics source.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		BaseBackoff: 1 * time.Second,
		PageSize:    100,
		MaxPages:    10,
		UserAgent:   "user-analytics/0.1.0",
	}
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("max_retries must be >= 1 (got %d)", cfg.MaxRetries)
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("page_size must be >= 1 (got %d)", cfg.PageSize)
	}

	if cfg.MaxPages < 1 {
		return nil, fmt.Errorf("max_pages must be >= 1 (got %d)", cfg.MaxPages)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 1 * time.Second
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cfg.Cache,
		config: cfg,
		logger: logging.NewLogger("api-client"),
	}, nil
}

// Get performs a single GET against a resource with bounded retry.
// Every attempt is timed; when all attempts fail the returned *APIError
// wraps ErrRetryExhausted.
func (c *Client) Get(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	reqURL := c.buildURL(resource, params)

	var body []byte

	retryCfg := RetryConfig{
		MaxAttempts: c.config.MaxRetries,
		BaseBackoff: c.config.BaseBackoff,
	}

	retryErr := retryWithBackoff(ctx, retryCfg, c.logger, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		// Diagnostics only; recording the attempt can never fail the request.
		requestDuration.WithLabelValues(resource).Observe(duration.Seconds())

		if err != nil {
			requestsTotal.WithLabelValues(resource, "network_error").Inc()
			c.logger.Warn().
				Err(err).
				Str("resource", resource).
				Dur("duration", duration).
				Msg("HTTP request failed")
			return err
		}
		defer resp.Body.Close()

		requestsTotal.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()

		c.logger.Debug().
			Str("resource", resource).
			Int("status", resp.StatusCode).
			Dur("duration", duration).
			Msg("Request complete")

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{
				Resource:   resource,
				StatusCode: resp.StatusCode,
				Message:    resp.Status,
			}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}
		body = data
		return nil
	})

	if retryErr != nil {
		return nil, &APIError{
			Resource: resource,
			Message:  "request failed",
			Err:      retryErr,
		}
	}

	return body, nil
}

// Post performs a single POST with a JSON payload. No retry: the only POST
// consumer is the best-effort notifier.
func (c *Client) Post(ctx context.Context, resource string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(resource, nil), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	requestDuration.WithLabelValues(resource).Observe(duration.Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(resource, "network_error").Inc()
		return nil, &APIError{Resource: resource, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()

	c.logger.Debug().
		Str("resource", resource).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("Request complete")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return respBody, nil
}

// buildURL joins the base URL, resource path and query parameters.
func (c *Client) buildURL(resource string, params url.Values) string {
	u := c.config.BaseURL + "/" + strings.Trim(resource, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
