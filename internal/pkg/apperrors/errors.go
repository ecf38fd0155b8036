package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound          = errors.New("student not found")
	ErrEmailAlreadyExists       = errors.New("a student with this email already exists")
	ErrAdmissionNoAlreadyExists = errors.New("a student with this admission number already exists")
	ErrGuardianEmailExists      = errors.New("a guardian with this email already exists")
)

// Schedule errors
var (
	ErrScheduleNotFound = errors.New("schedule not found")
)

// CustomError carries an underlying sentinel plus request-specific context.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField attaches the offending field name.
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// NewValidationError creates a validation failure with a rule message.
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewConflictError creates a duplicate/conflict error with a field-specific message.
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewResourceNotFoundError creates a not-found error with a message.
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}
