package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ynym/garage-api/internal/constants"
)

// ValidationError reports a field constraint violation. It is raised before
// any persistence attempt so a failing request never partially writes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// requireString trims a mandatory string field and enforces its length.
func requireString(field, value string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", newValidationError(field, "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > max {
		return "", newValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return trimmed, nil
}

// optionalString trims an optional string field; an empty value becomes
// absent rather than an empty string.
func optionalString(field, value string, max int) (*string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > max {
		return nil, newValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return &trimmed, nil
}

// validateListRange bounds pagination parameters before any storage work.
func validateListRange(offset, limit int) error {
	if offset < 0 {
		return newValidationError("offset", "must not be negative")
	}
	if limit < 1 {
		return newValidationError("limit", "must be at least 1")
	}
	if limit > constants.MaxListLimit {
		return newValidationError("limit", fmt.Sprintf("must be at most %d", constants.MaxListLimit))
	}
	return nil
}
