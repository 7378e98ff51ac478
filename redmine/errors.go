package redmine

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration errors.
var (
	ErrConfigURLRequired    = errors.New("redmine url is required")
	ErrConfigAPIKeyRequired = errors.New("redmine api key is required")
)

// Sentinel errors for API failures, matched with errors.Is.
var (
	// ErrTicketNotFound indicates the ticket id does not exist.
	ErrTicketNotFound = errors.New("redmine ticket not found")

	// ErrUnauthorized indicates the API key was missing or rejected.
	ErrUnauthorized = errors.New("redmine authentication failed")

	// ErrForbidden indicates the key lacks permission for the ticket.
	ErrForbidden = errors.New("redmine permission denied")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("redmine rate limit exceeded")

	// ErrServerError indicates a server-side failure.
	ErrServerError = errors.New("redmine server error")
)

// APIError represents a non-success response from the Redmine API.
type APIError struct {
	StatusCode int    // HTTP status code returned
	Endpoint   string // Path that was requested
	Body       string // Raw response body, kept for diagnosis
}

func (e *APIError) Error() string {
	return fmt.Sprintf("redmine api error (%d) at %s", e.StatusCode, e.Endpoint)
}

// Unwrap maps the status code to a sentinel error.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrTicketNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// ParseError reports a response body that could not be decoded into the
// ticket envelope. The body is retained so the user can see what the
// server actually sent.
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode ticket %q: %v", e.Body, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the error indicates a missing ticket.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTicketNotFound)
}

// IsUnauthorized reports whether the error indicates a rejected API key.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
