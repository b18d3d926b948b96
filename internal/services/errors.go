package services

import "fmt"

type ValidationKind string

const (
	MissingField ValidationKind = "MISSING_FIELD"
	InvalidShape ValidationKind = "INVALID_SHAPE"
)

// ValidationError reports a payload rejected before any upstream call.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missingField(field, message string) *ValidationError {
	return &ValidationError{Kind: MissingField, Field: field, Message: message}
}

func invalidShape(field, message string) *ValidationError {
	return &ValidationError{Kind: InvalidShape, Field: field, Message: message}
}

// EmptyUpstreamResponseError means the upstream call succeeded but
// produced no usable completion.
type EmptyUpstreamResponseError struct{ Message string }

func (e *EmptyUpstreamResponseError) Error() string { return e.Message }

// UpstreamError wraps a failed upstream call. Err is for diagnostics only.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// UpstreamUnavailableError means the chat endpoint could not be reached.
type UpstreamUnavailableError struct {
	Message string
	Err     error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UpstreamUnavailableError) Unwrap() error { return e.Err }

// UpstreamTimeoutError means a call exceeded its deadline.
type UpstreamTimeoutError struct {
	Message string
	Err     error
}

func (e *UpstreamTimeoutError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UpstreamTimeoutError) Unwrap() error { return e.Err }

// RateLimitError means the chat endpoint refused the call with 429.
type RateLimitError struct {
	Message string
	Err     error
}

func (e *RateLimitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }
