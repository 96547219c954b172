package errors

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// MaxNameLength is the longest accepted instance name.
const MaxNameLength = 128

// ValidateName checks an instance name before it is used in file names and
// storage keys. Empty names are allowed; the loader derives one.
func ValidateName(name string) error {
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "instance name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "instance name contains control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "instance name contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateID checks that id is a canonical UUID as issued for stored
// schedules.
func ValidateID(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid schedule id %q", id)
	}
	if parsed.String() != strings.ToLower(id) {
		return New(ErrCodeInvalidID, "schedule id %q is not in canonical form", id)
	}
	return nil
}

// ValidateLimits checks search limits from user input.
func ValidateLimits(nodeLimit int, timeout time.Duration) error {
	if nodeLimit < 0 {
		return New(ErrCodeInvalidInput, "node limit must not be negative")
	}
	if timeout < 0 {
		return New(ErrCodeInvalidInput, "timeout must not be negative")
	}
	return nil
}
