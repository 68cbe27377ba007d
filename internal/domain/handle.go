package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError marks a user-caused input error, distinguishing it from
// infrastructure failures so handlers can map it to a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// handlePattern restricts handles to letters and hyphens. Handles end up
// in public booking URLs, so the character set stays deliberately small.
var handlePattern = regexp.MustCompile(`^[a-zA-Z-]+$`)

// MinHandleLength is the minimum number of characters in a handle.
const MinHandleLength = 3

// NormalizeHandle lowercases and trims a candidate handle. Normalization
// is idempotent: applying it twice yields the same result.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// ValidateHandle checks a candidate handle against the public-URL rules.
// The input is validated as submitted; callers normalize before storing.
func ValidateHandle(handle string) error {
	if len(handle) < MinHandleLength {
		return NewValidationError("username must have at least %d characters", MinHandleLength)
	}
	if !handlePattern.MatchString(handle) {
		return NewValidationError("username can only contain letters and hyphens")
	}
	return nil
}

// MinNameLength is the minimum number of characters in a display name.
const MinNameLength = 3

// ValidateName checks the free-text display name.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < MinNameLength {
		return NewValidationError("name must have at least %d characters", MinNameLength)
	}
	return nil
}
