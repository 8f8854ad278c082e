package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medpro/clinicapp/internal/observability/metrics"
	"github.com/medpro/clinicapp/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// Config controls how the clinic API client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	Metrics    *metrics.APIMetrics
}

// Client speaks the clinic backend's REST contract: paged collection
// listings with a content envelope, PUT to the collection root with the id
// in the body, and DELETE requests that may carry a JSON body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.APIMetrics
}

// New creates a configured Client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("clinicapi: base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger.Component("clinicapi"),
		metrics:    cfg.Metrics,
	}, nil
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.invoke(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.invoke(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body. The backend expects updates at the
// collection root, with the identifier inside the body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.invoke(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE. body may be nil; appointments carry a JSON
// cancellation payload on the delete request.
func (c *Client) Delete(ctx context.Context, path string, body any) error {
	return c.invoke(ctx, http.MethodDelete, path, nil, body, nil)
}

func (c *Client) invoke(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("clinicapi: marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("clinicapi: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(resourceLabel(path), method, 0, time.Since(start).Seconds())
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(resourceLabel(path), method, resp.StatusCode, time.Since(start).Seconds())
		return &TransportError{Err: err}
	}
	c.metrics.ObserveRequest(resourceLabel(path), method, resp.StatusCode, time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp.StatusCode, data)
		c.logger.Warn("api rejection",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.UserMessage(),
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("clinicapi: unmarshal response: %w", err)
	}
	return nil
}

// resourceLabel keeps metric cardinality bounded: "/medicos/42" → "/medicos".
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
