package yahoo

import (
	"fmt"
	"time"
)

// APIError represents an error response from the Yahoo Finance API. The
// endpoints are unofficial and prone to blocking; failures are surfaced to
// the caller, never retried here.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError represents a client-side rate limit wait failure or an
// HTTP 429 from the API.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Yahoo rate limit exceeded, retry after %v", e.RetryAfter)
}
