package errors

import (
	"fmt"
	"os"
	"strings"
)

// ErrorCode represents a Recap error code.
type ErrorCode string

const (
	ErrValidation        ErrorCode = "VALIDATION_ERROR"   // 400
	ErrSecurityViolation ErrorCode = "SECURITY_VIOLATION" // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrContentTooLarge   ErrorCode = "CONTENT_TOO_LARGE"  // 413
	ErrStorage           ErrorCode = "STORAGE_ERROR"      // 500
	ErrIndexCorruption   ErrorCode = "INDEX_CORRUPTION"   // 500, recovered locally
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// RecapError represents a structured error with code, status, and details.
type RecapError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *RecapError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for invalid input.
func NewValidation(msg string) *RecapError {
	return &RecapError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewSecurityViolation creates a 400 error for path-traversal or injection
// attempts. The caller-facing message is deliberately generic; callers log
// the full detail server-side before returning this.
func NewSecurityViolation() *RecapError {
	return &RecapError{
		Code:    ErrSecurityViolation,
		Status:  400,
		Message: "input rejected",
	}
}

// NewNotFound creates a 404 error for a conversation that cannot be located.
func NewNotFound(identifier string) *RecapError {
	return &RecapError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("conversation not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewContentTooLarge creates a 413 error when content exceeds the size limit.
func NewContentTooLarge(max, actual int) *RecapError {
	return &RecapError{
		Code:    ErrContentTooLarge,
		Status:  413,
		Message: fmt.Sprintf("content exceeds maximum size: %d bytes (max %d)", actual, max),
		Details: map[string]any{"max_bytes": max, "actual_bytes": actual},
	}
}

// NewStorage creates a 500 error for a content I/O failure. Absolute paths
// are redacted from the message so system layout never reaches the caller.
func NewStorage(op string, err error) *RecapError {
	msg := op
	if err != nil {
		msg = fmt.Sprintf("%s: %s", op, RedactPath(err.Error()))
	}
	return &RecapError{
		Code:    ErrStorage,
		Status:  500,
		Message: msg,
	}
}

// NewIndexCorruption creates an error describing a malformed index file.
// Callers recover from this locally (treat the index as empty) rather than
// surfacing it; the type exists so the condition can be logged and tested.
func NewIndexCorruption(file string, err error) *RecapError {
	msg := fmt.Sprintf("malformed index file %s", file)
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, RedactPath(err.Error()))
	}
	return &RecapError{
		Code:    ErrIndexCorruption,
		Status:  500,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *RecapError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &RecapError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a RecapError with the given code.
func Is(err error, code ErrorCode) bool {
	if rErr, ok := err.(*RecapError); ok {
		return rErr.Code == code
	}
	return false
}

// RedactPath replaces the user's home directory and any remaining absolute
// path segments in s with placeholders. Relative paths are left alone.
func RedactPath(s string) string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		s = strings.ReplaceAll(s, home, "~")
	}
	var b strings.Builder
	for i, field := range strings.Fields(s) {
		if i > 0 {
			b.WriteByte(' ')
		}
		trimmed := strings.Trim(field, `"':,`)
		if strings.HasPrefix(trimmed, "/") && strings.Count(trimmed, "/") > 1 {
			b.WriteString(strings.Replace(field, trimmed, "<redacted>", 1))
			continue
		}
		b.WriteString(field)
	}
	return b.String()
}
