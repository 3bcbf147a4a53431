package api

import (
	"errors"
	"fmt"
	"strings"
)

// The client classifies every failed analysis into one of three kinds:
// TransportError (no response obtained), RequestError (response obtained,
// status signals failure) and ParseError (success status, body fails the
// schema). None of them is retried; the controller turns each into a
// user-visible message via UserMessage.

// TransportError means no response was obtained at all (network unreachable,
// DNS failure, timeout).
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Message returns the user-facing text for the failure.
func (e *TransportError) Message() string {
	return categorizeTransportError(e.Cause)
}

// RequestError means the service responded with a non-success status.
// Detail holds the human-readable message extracted from the response body,
// if one was present.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request error: status %d: %s", e.Status, e.Message())
}

// Message returns the service-provided detail, falling back to a generic
// message that includes the numeric status code.
func (e *RequestError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("analysis service returned status %d", e.Status)
}

// ParseError means the service responded successfully but the body does not
// conform to the result schema.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Message() string {
	return fmt.Sprintf("invalid response from analysis service: %v", e.Cause)
}

// UserMessage extracts the user-facing text from any client error.
func UserMessage(err error) string {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Message()
	}
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Message()
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Message()
	}
	return err.Error()
}

// categorizeTransportError maps common transport failures to actionable,
// user-friendly messages. Falls back to the raw error text.
func categorizeTransportError(err error) string {
	if err == nil {
		return ""
	}

	errLower := strings.ToLower(err.Error())

	if strings.Contains(errLower, "context deadline exceeded") ||
		strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "timed out") {
		return "Request timeout - the analysis service took too long to respond"
	}

	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return "DNS resolution failed - verify the service address is correct"
	}

	if strings.Contains(errLower, "connection refused") {
		return "Connection refused - check that the analysis service is running"
	}

	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return "Network unreachable - check your network connection"
	}

	if strings.Contains(errLower, "connection reset") {
		return "Connection reset - the analysis service closed the connection"
	}

	return "Request failed: " + err.Error()
}
