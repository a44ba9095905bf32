package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"memecoin-client-go/internal/config"
	"memecoin-client-go/internal/models"

	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// Observer receives one call per completed HTTP round trip. status is 0
// when the request failed before a response was received.
type Observer interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Client is a thin wrapper over the analyzer REST API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
	observer   Observer

	mu    sync.RWMutex
	token string
}

// Response is the envelope every endpoint answers with
type Response[T any] struct {
	Success    bool               `json:"success"`
	Data       T                  `json:"data"`
	Message    string             `json:"message,omitempty"`
	Error      *ErrorBody         `json:"error,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// ErrorBody is the error object of a failed response
type ErrorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

func NewClient(cfg config.APIConfig, logger *zap.Logger, observer Observer) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		observer:   observer,
	}
}

// SetToken sets the bearer token attached to subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// request describes one call. route is the path template used as the
// metrics label; path is the concrete path below /api/v1.
type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

func call[T any](ctx context.Context, c *Client, r request) (*Response[T], error) {
	// A 2xx answer without an explicit success flag counts as success.
	resp := &Response[T]{Success: true}
	if err := c.do(ctx, r, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	endpoint := c.baseURL + apiPrefix + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("unable to encode %s %s request: %w", r.method, r.route, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("unable to build %s %s request: %w", r.method, r.route, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("Sending API request",
		zap.String("method", r.method),
		zap.String("url", endpoint))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(r, 0, time.Since(start))
		c.logger.Error("Request error",
			zap.String("method", r.method),
			zap.String("url", endpoint),
			zap.Error(err))
		return fmt.Errorf("%s %s failed: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.observe(r, resp.StatusCode, time.Since(start))
	if err != nil {
		return fmt.Errorf("unable to read %s %s response: %w", r.method, r.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{
			Method:     r.method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
		c.logger.Error("HTTP error",
			zap.String("method", r.method),
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		return httpErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unable to decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) observe(r request, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(r.method, r.route, status, elapsed)
	}
}
