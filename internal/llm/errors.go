package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// The error types below are what every backend maps its failures onto.
// RetryProvider decides from the type whether another attempt can help.

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

// ErrInvalidResponse is an answer that is empty, filtered, or does not
// match the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

// ErrProviderUnavailable covers outages, 5xx replies and network errors.
type ErrProviderUnavailable struct {
	Err error
}

// ErrMaxTokensExceeded is a structured answer cut off at MaxTokens.
// Content holds whatever arrived.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

// ErrUnauthorized is a rejected API key (401 or 403).
type ErrUnauthorized struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrInvalidResponse) Error() string { return "invalid llm response: " + causeOf(e.Err) }

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return "llm provider unavailable: " + e.Err.Error()
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("llm response cut off at the token limit after %d bytes", len(e.Content))
}

func (e *ErrUnauthorized) Error() string {
	return "llm provider rejected the api key: " + causeOf(e.Err)
}

func (e *ErrRateLimit) Unwrap() error           { return e.Err }
func (e *ErrInvalidResponse) Unwrap() error     { return e.Err }
func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
func (e *ErrUnauthorized) Unwrap() error        { return e.Err }

func causeOf(err error) string {
	if err == nil {
		return "unknown cause"
	}
	return err.Error()
}
