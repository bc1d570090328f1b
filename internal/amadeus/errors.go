package amadeus

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// AuthenticationError reports a failed credential exchange or a request
// that was rejected as unauthorized after a fresh token. Terminal.
type AuthenticationError struct {
	Status      int
	Code        string
	Description string
	Err         error
}

func (e *AuthenticationError) Error() string {
	var b strings.Builder
	b.WriteString("amadeus authentication failed")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Code != "" || e.Description != "" {
		fmt.Fprintf(&b, ": %s - %s", e.Code, e.Description)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RateLimitError is a 429 response. RetryAfter is zero when the provider
// did not send a usable Retry-After header.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("amadeus rate limit exceeded (retry after %s)", e.RetryAfter)
	}
	return "amadeus rate limit exceeded"
}

// TransientNetworkError is a connection failure, timeout or 5xx response.
// Status is zero for transport errors.
type TransientNetworkError struct {
	Status int
	Err    error
}

func (e *TransientNetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("amadeus transient error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("amadeus transient error: %v", e.Err)
}

func (e *TransientNetworkError) Unwrap() error { return e.Err }

// ProviderError is a non-retryable provider rejection, typically a 4xx
// with the standard Amadeus error envelope, or an undecodable success body.
type ProviderError struct {
	Status int
	Code   string
	Title  string
	Detail string
}

func (e *ProviderError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if e.Code != "" {
		return fmt.Sprintf("Amadeus API error (status %d, code %s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("Amadeus API error (status %d): %s", e.Status, msg)
}

// ExhaustedRetriesError is returned once every attempt of a logical
// request failed with a retryable error. Last is the final such error.
type ExhaustedRetriesError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("amadeus request failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.Last }

// IsRetryable reports whether err is a failure the executor retries.
func IsRetryable(err error) bool {
	var rl *RateLimitError
	var tn *TransientNetworkError
	return errors.As(err, &rl) || errors.As(err, &tn)
}

type errorEnvelope struct {
	Errors []apiError `json:"errors"`
}

type apiError struct {
	Status flexString `json:"status"`
	Code   flexString `json:"code"`
	Title  string     `json:"title"`
	Detail string     `json:"detail"`
	Source struct {
		Parameter string `json:"parameter"`
	} `json:"source"`
}

// parseProviderError builds a ProviderError from an error response body,
// falling back to the raw body when it is not the standard envelope.
func parseProviderError(status int, body []byte) *ProviderError {
	pe := &ProviderError{Status: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Errors) == 0 {
		pe.Detail = strings.TrimSpace(string(body))
		return pe
	}

	first := env.Errors[0]
	pe.Code = string(first.Code)
	pe.Title = first.Title
	pe.Detail = first.Detail
	if first.Source.Parameter != "" {
		pe.Detail = fmt.Sprintf("%s (parameter %s)", pe.Detail, first.Source.Parameter)
	}
	return pe
}
