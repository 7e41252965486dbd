package nhl

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid nhl client configuration")
	// ErrNotFound indicates a 404 from the API
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited indicates a 429 from the API
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrBadRequest indicates a 400 from the API
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates a 401 from the API
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServer indicates a 5xx from the API
	ErrServer = errors.New("server error")
	// ErrUnexpectedStatus indicates any other non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrUnknownSeason indicates a season id missing from the season manifest
	ErrUnknownSeason = errors.New("unknown season")
)

// ErrorKind classifies an APIError by the HTTP status that produced it.
type ErrorKind int

const (
	// KindGeneric covers statuses with no dedicated kind.
	KindGeneric ErrorKind = iota
	KindResourceNotFound
	KindRateLimitExceeded
	KindBadRequest
	KindUnauthorized
	KindServerError
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindResourceNotFound:
		return "resource not found"
	case KindRateLimitExceeded:
		return "rate limit exceeded"
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindServerError:
		return "server error"
	default:
		return "api error"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindResourceNotFound:
		return ErrNotFound
	case KindRateLimitExceeded:
		return ErrRateLimited
	case KindBadRequest:
		return ErrBadRequest
	case KindUnauthorized:
		return ErrUnauthorized
	case KindServerError:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}

// APIError is a non-2xx response from the NHL API. The status code is always
// preserved so callers can recover the wire-level cause.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("nhl API error: %s: status %d: %s", e.Kind, e.StatusCode, e.Message)
}

// Unwrap exposes the kind's sentinel so errors.Is(err, ErrNotFound) works.
func (e *APIError) Unwrap() error {
	return e.Kind.sentinel()
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.Kind == KindResourceNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized
}

// IsRetryable reports whether re-issuing the same request could succeed.
// The client never retries on its own.
func (e *APIError) IsRetryable() bool {
	return e.Kind == KindRateLimitExceeded || e.Kind == KindServerError
}

// statusRule maps an inclusive status range to a kind.
type statusRule struct {
	min, max int
	kind     ErrorKind
}

// statusRules is evaluated in order; exact codes come before ranges.
var statusRules = []statusRule{
	{404, 404, KindResourceNotFound},
	{429, 429, KindRateLimitExceeded},
	{400, 400, KindBadRequest},
	{401, 401, KindUnauthorized},
	{500, 599, KindServerError},
}

// Classify maps a non-success status code to an APIError. requestID is
// embedded in the message so failures can be traced to the request.
func Classify(statusCode int, requestID string) *APIError {
	msg := fmt.Sprintf("request to %s failed", requestID)
	for _, rule := range statusRules {
		if statusCode >= rule.min && statusCode <= rule.max {
			return &APIError{Kind: rule.kind, StatusCode: statusCode, Message: msg}
		}
	}
	return &APIError{
		Kind:       KindGeneric,
		StatusCode: statusCode,
		Message:    "unexpected error: " + msg,
	}
}

// TransportError means no response was obtained: DNS, connect, TLS, timeout
// or cancellation.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("nhl: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request ran out of time.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// DecodeError means a 2xx body did not match the expected schema.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nhl: failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed date or season supplied by the caller.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
