package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeTransport represents a network-level failure during fetch or submit
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeBlocked represents a persistent 403 from the origin site
	ErrorTypeBlocked ErrorType = "blocked"
	// ErrorTypeFetch represents a terminal non-200, non-403 status from the origin
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeParse represents an HTML parsing failure
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypePriceUnresolved represents a page with no resolvable price
	ErrorTypePriceUnresolved ErrorType = "price_unresolved"
	// ErrorTypeAuth represents a 401 from the submission API
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeQuota represents a 403 from the submission API
	ErrorTypeQuota ErrorType = "quota"
	// ErrorTypeValidation represents a 400 from the submission API
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeSubmission represents any other submission API failure
	ErrorTypeSubmission ErrorType = "submission"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// PipelineError represents a failure scoped to a single URL's processing
type PipelineError struct {
	Type    ErrorType
	URL     string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.URL, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.URL, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *PipelineError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeTransport:
		return true
	default:
		return false
	}
}

// New creates a new PipelineError
func New(errType ErrorType, url, message string, err error) *PipelineError {
	return &PipelineError{
		Type:    errType,
		URL:     url,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewTransport creates a new transport error
func NewTransport(url, message string, err error) *PipelineError {
	return New(ErrorTypeTransport, url, message, err)
}

// NewBlocked creates a new blocked-by-origin error
func NewBlocked(url, message string) *PipelineError {
	return New(ErrorTypeBlocked, url, message, nil)
}

// NewFetch creates a new fetch error for a terminal non-200 status
func NewFetch(url string, status int) *PipelineError {
	return New(ErrorTypeFetch, url, fmt.Sprintf("unexpected status code: %d", status), nil)
}

// NewParse creates a new parse error
func NewParse(url, message string, err error) *PipelineError {
	return New(ErrorTypeParse, url, message, err)
}

// NewPriceUnresolved creates a new price-unresolved error
func NewPriceUnresolved(url string) *PipelineError {
	return New(ErrorTypePriceUnresolved, url, "no extractor yielded a valid price", nil)
}

// NewAuth creates a new auth error
func NewAuth(url, message string) *PipelineError {
	return New(ErrorTypeAuth, url, message, nil)
}

// NewQuota creates a new quota/permission error
func NewQuota(url, message string) *PipelineError {
	return New(ErrorTypeQuota, url, message, nil)
}

// NewValidation creates a new validation error
func NewValidation(url, message string) *PipelineError {
	return New(ErrorTypeValidation, url, message, nil)
}

// NewSubmission creates a new generic submission error
func NewSubmission(url string, status int, body string) *PipelineError {
	return New(ErrorTypeSubmission, url, fmt.Sprintf("HTTP %d: %s", status, body), nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *PipelineError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// TypeOf returns the ErrorType of err, or an empty type for foreign errors
func TypeOf(err error) ErrorType {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type
	}
	return ""
}

// IsType reports whether err is a PipelineError of the given type
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}
