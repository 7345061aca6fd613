// Package client is a minimal GraphQL-over-HTTP client. It exists to run
// the introspection query against a schema endpoint.
package client

import (
	"context"
	"fmt"
	"maps"
	"net/http"
)

type Client struct {
	client   *http.Client
	header   http.Header
	endpoint string
}

// NewClient creates a new http client wrapper.
func NewClient(endpoint string, options ...Option) *Client {
	client := &Client{
		endpoint: endpoint,
		client:   http.DefaultClient,
		header:   http.Header{},
	}
	for _, option := range options {
		option(client)
	}

	return client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

// WithHTTPHeader adds header to every request. Later options override
// earlier values of the same key.
func WithHTTPHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			c.header[key] = values
		}
	}
}

// Post sends a query and decodes the "data" member of the response into
// out. Per-call options apply to this request only.
func (c *Client) Post(ctx context.Context, operationName, query string, variables map[string]any, out any, options ...Option) error {
	call := &Client{
		endpoint: c.endpoint,
		client:   c.client,
		header:   maps.Clone(c.header),
	}
	for _, option := range options {
		option(call)
	}

	req, err := NewRequest(ctx, call.endpoint, operationName, query, variables)
	if err != nil {
		return fmt.Errorf("failed to create post request: %w", err)
	}
	for key, values := range call.header {
		req.Header[key] = values
	}

	resp, err := call.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return ParseResponse(resp, out)
}
