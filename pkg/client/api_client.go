// Package client provides an HTTP client for codegraf-api's ops surface:
// triggering a batch run and reading back its stats, from outside the
// process (CI steps, cron wrappers, other services).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/yourtionguo/codegraf/internal/pipeline"
)

// APIClient talks to a running codegraf-api instance.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	maxRetries int
}

// NewAPIClient creates a new API client.
func NewAPIClient(baseURL string, options ...ClientOption) *APIClient {
	client := &APIClient{
		baseURL:    baseURL,
		maxRetries: 3,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

// ClientOption configures the API client.
type ClientOption func(*APIClient)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *APIClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets a bearer token sent with every request.
func WithToken(token string) ClientOption {
	return func(c *APIClient) {
		c.token = token
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *APIClient) {
		c.maxRetries = maxRetries
	}
}

// IndexRequest is the body for POST /index.
type IndexRequest struct {
	Path             string `json:"path"`
	DomainConfigPath string `json:"domainConfigPath,omitempty"`
	UseGit           bool   `json:"useGit,omitempty"`
	WorkerCount      int    `json:"workerCount,omitempty"`
}

// RunRecord mirrors codegraf-api's run record: a completed (or failed)
// batch pass with its timing and pipeline.Stats.
type RunRecord struct {
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Path       string          `json:"path"`
	Stats      *pipeline.Stats `json:"stats,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Index triggers a synchronous batch run against req.Path and returns the
// resulting run record. A 409 (a run already in progress on the server)
// surfaces as an *APIError with StatusCode 409 rather than a retry target.
func (c *APIClient) Index(ctx context.Context, req *IndexRequest) (*RunRecord, error) {
	var record RunRecord
	if err := c.doRequestWithRetry(ctx, http.MethodPost, "/index", req, &record); err != nil {
		return nil, fmt.Errorf("index request failed: %w", err)
	}
	return &record, nil
}

// Stats fetches the last run's record. If the server has never run a
// batch, the returned RunRecord is the zero value and ok is false.
func (c *APIClient) Stats(ctx context.Context) (record RunRecord, ok bool, err error) {
	var raw map[string]json.RawMessage
	if err := c.doRequestWithRetry(ctx, http.MethodGet, "/stats", nil, &raw); err != nil {
		return RunRecord{}, false, fmt.Errorf("stats request failed: %w", err)
	}
	if _, noRuns := raw["status"]; noRuns && len(raw) == 1 {
		return RunRecord{}, false, nil
	}
	merged, err := json.Marshal(raw)
	if err != nil {
		return RunRecord{}, false, err
	}
	if err := json.Unmarshal(merged, &record); err != nil {
		return RunRecord{}, false, fmt.Errorf("failed to parse stats response: %w", err)
	}
	return record, true, nil
}

// Healthz checks liveness via GET /healthz.
func (c *APIClient) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// doRequestWithRetry performs an HTTP request with exponential backoff,
// retrying on 5xx, 429, and every error that is not an HTTP status
// (network failures, but also request-encoding and response-decoding
// failures).
func (c *APIClient) doRequestWithRetry(ctx context.Context, method, path string, body, result interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.doRequest(ctx, method, path, body, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !c.isRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *APIClient) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp map[string]interface{}
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			if errMsg, ok := errResp["error"].(string); ok {
				return &APIError{StatusCode: resp.StatusCode, Message: errMsg}
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *APIClient) isRetryable(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}
	return true
}

// APIError is an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}
