package redmine

import "time"

// APIKeyHeader is the header Redmine reads the API key from.
const APIKeyHeader = "X-Redmine-API-Key"

// Config holds the configuration for the Redmine client.
type Config struct {
	// URL is the base URL of the Redmine instance,
	// e.g. https://redmine.example.com.
	URL string

	// APIKey authenticates requests via the X-Redmine-API-Key header.
	APIKey string

	// Insecure disables TLS certificate verification. Some internal
	// Redmine instances run with self-signed certificates.
	Insecure bool

	// Timeout is the request timeout. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Validate checks that the config can produce a working client.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrConfigURLRequired
	}
	if c.APIKey == "" {
		return ErrConfigAPIKeyRequired
	}
	return nil
}
