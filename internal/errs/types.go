package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

type UnauthorizedError struct {
	ErrorMessage
}

// RateLimitedError marks an upstream 429 so callers can present "try again shortly".
type RateLimitedError struct {
	ErrorMessage
}

// QuotaExceededError marks an upstream 402; never retried automatically.
type QuotaExceededError struct {
	ErrorMessage
}

// UpstreamError wraps any other non-success gateway status.
type UpstreamError struct {
	ErrorMessage
	Status int
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Cause     error
}

type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewRateLimitedError() *RateLimitedError {
	return &RateLimitedError{
		ErrorMessage: ErrorMessage{Message: "Rate limit exceeded. Please try again in a moment."},
	}
}

func NewQuotaExceededError() *QuotaExceededError {
	return &QuotaExceededError{
		ErrorMessage: ErrorMessage{Message: "AI credits required. Please add credits to your workspace."},
	}
}

func NewUpstreamError(status int) *UpstreamError {
	return &UpstreamError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("AI gateway error: %d", status)},
		Status:       status,
	}
}

func NewDatabaseError(operation, message string, cause error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Cause:        cause,
	}
}

func (e *DatabaseError) Unwrap() error { return e.Cause }

func NewExternalServiceError(service, message string, transient bool) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
	}
}
