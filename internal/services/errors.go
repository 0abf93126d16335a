package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/sat-practice-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound = errors.New("resource not found")

	// Question specific errors
	ErrQuestionNotFound = errors.New("question not found")

	// Import/export errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyImport       = errors.New("import contains no questions")
	ErrImportInProgress  = errors.New("a bulk load is already running")
	ErrMalformedImport   = errors.New("import file could not be parsed")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuestionNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptyImport) ||
		errors.Is(err, ErrMalformedImport) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrImportInProgress)
}
