package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stratfolio/stratfolio/internal/models"
)

const defaultRequestTimeout = 30 * time.Second

// TransportError wraps failures to reach the backend or non-2xx replies.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPClient talks to the advisor backend over HTTP+JSON.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client against the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

// GenerateStrategy calls POST /api/generate-strategy.
func (c *HTTPClient) GenerateStrategy(ctx context.Context, req models.GenerateStrategyRequest) (*models.StrategyResponse, error) {
	var resp models.StrategyResponse
	if err := c.post(ctx, "/api/generate-strategy", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProcessFeedback calls POST /api/process-feedback.
func (c *HTTPClient) ProcessFeedback(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackResponse, error) {
	var resp models.FeedbackResponse
	if err := c.post(ctx, "/api/process-feedback", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return &TransportError{Op: path, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		io.Copy(io.Discard, httpResp.Body)
		return &TransportError{Op: path, Status: httpResp.StatusCode}
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return &TransportError{Op: path, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
