package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// ErrValidation matches every *ValidationError via errors.Is
var ErrValidation = errors.New("validation error")

// ValidationError reports malformed or inconsistent input and names the offending field
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true for any validation error
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ParseDate parses a YYYY-MM-DD date; field names the input in the error
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, NewValidationError(field, "is required")
	}
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, NewValidationError(field, fmt.Sprintf("expected YYYY-MM-DD, got %q", s))
	}
	return d, nil
}

// ParseTime parses an HH:MM time of day; field names the input in the error
func ParseTime(field, s string) (types.TimeString, error) {
	if strings.TrimSpace(s) == "" {
		return "", NewValidationError(field, "is required")
	}
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", NewValidationError(field, fmt.Sprintf("expected HH:MM, got %q", s))
	}
	return t, nil
}
