// Package redmine provides a minimal client for the Redmine REST API.
//
// Only the single-issue endpoint is covered: the client fetches
// /issues/<id>.json with an API key header and decodes the ticket
// envelope into typed models. Requests are not retried; callers treat
// failures as fatal.
package redmine
