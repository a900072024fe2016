// internal/engine/errors.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrFetchFailed is the single outcome every page-fetch failure collapses into
var ErrFetchFailed = errors.New("fetch failed")

// ErrorCode records which kind of fetch failure happened. It is kept for logging;
// callers only branch on ErrFetchFailed.
type ErrorCode string

const (
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeHTTPStatus   ErrorCode = "HTTP_STATUS"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeReadError    ErrorCode = "READ_ERROR"
	ErrCodeBrowserError ErrorCode = "BROWSER_ERROR"
	ErrCodeInvalidURL   ErrorCode = "INVALID_URL"
)

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *EngineError) Is(target error) bool {
	if target == ErrFetchFailed {
		return true
	}
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// StatusError reports a response outside the 2xx range
func StatusError(url string, status int, text string) *EngineError {
	return NewEngineError(ErrCodeHTTPStatus, fmt.Sprintf("unexpected status %s", text), nil).
		WithDetail("url", url).
		WithDetail("status", status)
}

// TransportError classifies a transport failure as timeout or network error
func TransportError(url string, err error) *EngineError {
	code := ErrCodeNetworkError
	if isTimeout(err) {
		code = ErrCodeTimeout
	}
	return NewEngineError(code, "request failed", err).WithDetail("url", url)
}

// CodeOf returns the error code carried by err, or "" when err is not an EngineError
func CodeOf(err error) ErrorCode {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
