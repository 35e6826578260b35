// Package api is the HTTP access layer of the client core. Every call to
// the persistence collaborator goes through Client, and every failure is
// surfaced as *APIError so callers can branch on Status == 0 to tell
// "server said no" apart from "never reached server".
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Endpoint paths of the persistence collaborator.
const (
	EndpointUsers         = "/users"
	EndpointEquipment     = "/equipment"
	EndpointHistory       = "/history"
	EndpointEquipmentBulk = "/equipment/bulk"
)

// APIError represents both kinds of failure uniformly: a non-2xx response
// (Status, Body and Endpoint filled) and a transport failure (Status 0,
// wrapped cause).
type APIError struct {
	Status   int
	Endpoint string
	Body     string
	cause    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("Network error: %v", e.cause)
	}
	return fmt.Sprintf("API Error: %d - %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.cause }

// Client issues JSON requests against the collaborator's /api prefix.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

// New creates a client for serverURL (scheme + host:port, no path).
func New(serverURL string, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: serverURL + "/api",
		http:    &http.Client{},
		log:     logger,
	}
}

// Call sends one JSON request and decodes the JSON response into out
// (skipped when out is nil). payload may be nil for bodyless requests.
func (c *Client) Call(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return &APIError{Status: 0, Endpoint: endpoint, cause: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return &APIError{Status: 0, Endpoint: endpoint, cause: err}
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Errorw("network error", "endpoint", endpoint, "error", err)
		return &APIError{Status: 0, Endpoint: endpoint, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Errorw("reading response body", "endpoint", endpoint, "error", err)
		return &APIError{Status: 0, Endpoint: endpoint, cause: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Endpoint: endpoint, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: 0, Endpoint: endpoint, cause: err}
	}
	return nil
}

// Get wraps Call for GET requests.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Call(ctx, http.MethodGet, endpoint, nil, out)
}

// Post wraps Call for POST requests.
func (c *Client) Post(ctx context.Context, endpoint string, payload, out any) error {
	return c.Call(ctx, http.MethodPost, endpoint, payload, out)
}

// Put wraps Call for PUT requests.
func (c *Client) Put(ctx context.Context, endpoint string, payload, out any) error {
	return c.Call(ctx, http.MethodPut, endpoint, payload, out)
}

// Delete wraps Call for DELETE requests.
func (c *Client) Delete(ctx context.Context, endpoint string, payload, out any) error {
	return c.Call(ctx, http.MethodDelete, endpoint, payload, out)
}
