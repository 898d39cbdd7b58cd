// Package cinemaapi is a client for the remote cinema administration API.
// Every response is wrapped in {success, result, error}; request bodies are
// sent as multipart forms with nested keys written as parent[key].
package cinemaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL     = "https://shfe-diplom.neto-server.ru"
	DefaultTimeout     = 15 * time.Second
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
	unknownError       = "Unknown error"
)

// Client wraps HTTP access to the remote API. It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration

	mu    sync.RWMutex
	token string
}

// APIError is returned when the API answers with success=false or a
// response that is not an envelope.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "cinema api error"
	}
	return fmt.Sprintf("cinema api error (%s): %s", e.Endpoint, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   string          `json:"error"`
}

// NewClient creates a client for baseURL. If httpClient is nil, a client
// bounded by DefaultTimeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// Logout forgets the bearer token.
func (c *Client) Logout() {
	c.SetToken("")
}

// do sends one request and decodes the envelope result into out. GET
// requests are retried on transport errors and 5xx answers.
func (c *Client) do(ctx context.Context, method, endpoint string, body map[string]any, out any) error {
	attempts := 1
	if method == http.MethodGet && c.maxAttempts > 1 {
		attempts = c.maxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.waitRetry(ctx, attempt-1); err != nil {
				return err
			}
		}

		retry, err := c.doOnce(ctx, method, endpoint, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, endpoint string, body map[string]any, out any) (bool, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		buf := &bytes.Buffer{}
		ct, err := encodeForm(buf, body)
		if err != nil {
			return false, fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		reader = buf
		contentType = ct
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reader)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		retry := !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		return retry, fmt.Errorf("request %s failed: %w", endpoint, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return true, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		message := strings.TrimSpace(string(raw))
		if len(message) > 200 {
			message = message[:200]
		}
		if message == "" {
			message = unknownError
		}
		return res.StatusCode >= http.StatusInternalServerError, &APIError{
			StatusCode: res.StatusCode,
			Endpoint:   endpoint,
			Message:    message,
		}
	}

	if !env.Success {
		message := env.Error
		if message == "" {
			message = unknownError
		}
		return res.StatusCode >= http.StatusInternalServerError, &APIError{
			StatusCode: res.StatusCode,
			Endpoint:   endpoint,
			Message:    message,
		}
	}

	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return false, fmt.Errorf("decode %s result: %w", endpoint, err)
	}
	return false, nil
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	timer := time.NewTimer(c.retryDelay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	limit := c.retryCap
	if limit <= 0 {
		limit = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= limit/2 {
			return limit
		}
		delay *= 2
	}
	return min(delay, limit)
}
