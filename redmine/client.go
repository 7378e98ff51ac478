package redmine

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client provides access to the Redmine REST API.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
// This is primarily used for testing.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Redmine client.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{}
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	c := &Client{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// TicketURL returns the API URL for a ticket id.
func (c *Client) TicketURL(id int) string {
	return fmt.Sprintf("%s/issues/%d.json", c.baseURL, id)
}

// GetTicket fetches a ticket by id and decodes the issue envelope.
// Failures are not retried.
func (c *Client) GetTicket(ctx context.Context, id int) (*Ticket, error) {
	path := fmt.Sprintf("/issues/%d.json", id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ticket #%d: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Body:       string(body),
		}
	}

	return ParseTicket(body)
}

// ParseTicket decodes a ticket envelope from raw JSON.
// Unknown fields are ignored; a shape mismatch keeps the raw body in
// the returned error.
func ParseTicket(body []byte) (*Ticket, error) {
	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, &ParseError{Body: string(body), Err: err}
	}
	return &ticket, nil
}
