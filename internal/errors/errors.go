package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeConflict   = "CONFLICT"

	// Expression and puzzle codes.
	ErrCodeParse            = "PARSE_ERROR"
	ErrCodeInvalidFormat    = "INVALID_EXPRESSION_FORMAT"
	ErrCodeDivisionByZero   = "DIVISION_BY_ZERO"
	ErrCodeOperandMismatch  = "OPERAND_MISMATCH"
	ErrCodeUnsolvablePuzzle = "UNSOLVABLE_PUZZLE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "PARSE_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// As extracts an *AppError from anywhere in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewConflictError creates a new CONFLICT error
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewParseError reports a character the expression tokenizer does not accept.
func NewParseError(char rune) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("Unsupported character: %c", char),
		Status:  422,
	}
}

// NewInvalidFormatError reports a malformed token sequence.
func NewInvalidFormatError(message string) *AppError {
	if message == "" {
		message = "The expression format is invalid."
	}
	return &AppError{
		Code:    ErrCodeInvalidFormat,
		Message: message,
		Status:  422,
	}
}

// NewDivisionByZeroError reports a division by a zero-valued operand.
func NewDivisionByZeroError() *AppError {
	return &AppError{
		Code:    ErrCodeDivisionByZero,
		Message: "Division by zero is not allowed.",
		Status:  422,
	}
}

// NewOperandMismatchError reports an expression that does not use the
// required numbers exactly once each.
func NewOperandMismatchError(required []int) *AppError {
	parts := make([]string, len(required))
	for i, n := range required {
		parts[i] = fmt.Sprint(n)
	}
	return &AppError{
		Code:    ErrCodeOperandMismatch,
		Message: fmt.Sprintf("Use each number exactly once: %s.", strings.Join(parts, ", ")),
		Status:  422,
	}
}

// NewUnsolvablePuzzleError marks a generator that exhausted its attempt cap.
func NewUnsolvablePuzzleError(attempts int) *AppError {
	return &AppError{
		Code:    ErrCodeUnsolvablePuzzle,
		Message: fmt.Sprintf("no solvable puzzle found in %d attempts", attempts),
		Status:  500,
	}
}
