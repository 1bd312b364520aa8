// Package jsonapi provides the HTTP transport shared by the raw REST
// provider adapters. It sends authenticated JSON requests and hands back the
// decoded response as an untyped value; the adapters own the interpretation
// of that value. Failures at this layer (connection errors, non-2xx
// statuses, undecodable bodies) are classified as transport errors and are
// never retried here.
package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
)

// Client is a minimal JSON API client bound to one base URL and one static
// authentication header. It holds no mutable state after construction and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	authHeader string
	authValue  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a client that authenticates every request by setting
// authHeader to authValue.
func NewClient(baseURL, authHeader, authValue string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		authHeader: authHeader,
		authValue:  authValue,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues a request and decodes the JSON response body into an untyped
// value. A nil body sends no payload; a nil return value means the response
// body was empty. op names the logical operation ("create", "delete",
// "read") for error reporting.
func (c *Client) Do(ctx context.Context, op, method, path string, body any) (any, error) {
	data, err := c.roundTrip(ctx, op, method, path, body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &deployer.TransportError{
			Op:  op,
			URL: c.baseURL + path,
			Err: fmt.Errorf("decode response: %w", err),
		}
	}
	return out, nil
}

// DoDiscard issues a request and discards the response body. Used for
// deletes, where success is "no error" and nothing is parsed.
func (c *Client) DoDiscard(ctx context.Context, op, method, path string) error {
	_, err := c.roundTrip(ctx, op, method, path, nil)
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &deployer.TransportError{Op: op, URL: url, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &deployer.TransportError{Op: op, URL: url, Err: err}
	}
	req.Header.Set(c.authHeader, c.authValue)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &deployer.TransportError{Op: op, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &deployer.TransportError{Op: op, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &deployer.TransportError{
			Op:         op,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", bytes.TrimSpace(data)),
		}
	}

	return data, nil
}
