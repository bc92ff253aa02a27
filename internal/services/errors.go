package services

import (
	"errors"

	apperrors "github.com/studyprep/content-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Template specific errors
	ErrTemplateNotFound    = errors.New("template not found")
	ErrTemplateInvalidKind = errors.New("invalid template kind")

	// Import specific errors
	ErrImportJobNotFound   = errors.New("import job not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// NewValidationError creates a field-level validation error
func NewValidationError(field, message string, value interface{}) *apperrors.ValidationError {
	return apperrors.NewValidationError(field, message, value)
}
