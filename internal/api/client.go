package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/redditmood/internal/types"
)

const defaultTimeout = 30 * time.Second

// Client talks to the analysis service. The endpoint is injected at
// construction so tests can point it at a mock server.
type Client struct {
	endpoint string // base endpoint, e.g. http://localhost:8000/api
	httpc    *http.Client
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the analysis service at the given base endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpc:    &http.Client{Timeout: defaultTimeout},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the shape of a failure response. Absence of the detail field
// or a malformed body falls back to a generic message.
type errorBody struct {
	Detail string `json:"detail"`
}

// Analyze submits one post URL for analysis and classifies the outcome.
// Exactly one request is issued per call; no retries. The URL is assumed
// already validated non-empty by the caller.
func (c *Client) Analyze(ctx context.Context, postURL string) (*types.AnalysisResult, error) {
	payload, err := json.Marshal(types.AnalysisRequest{URL: postURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("analysis request failed", "url", postURL, "error", err)
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.log.Debug("analysis request completed",
		"url", postURL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"size", len(body))

	if !IsSuccessStatus(resp.StatusCode) {
		// Best-effort extraction of the structured detail field.
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return nil, &RequestError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ParseError{Cause: err}
	}
	if err := result.Validate(); err != nil {
		return nil, &ParseError{Cause: err}
	}

	return &result, nil
}

// Health probes the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if !IsSuccessStatus(resp.StatusCode) {
		return &RequestError{Status: resp.StatusCode}
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return &ParseError{Cause: err}
	}
	if status.Status != "ok" {
		return &ParseError{Cause: fmt.Errorf("unexpected health status %q", status.Status)}
	}

	return nil
}

// Endpoint returns the configured base endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// IsSuccessStatus returns true if status code is 2xx.
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
