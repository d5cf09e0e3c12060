package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for records that do not exist. Callers match it
// with errors.Is.
var ErrNotFound = errors.New("record not found")

// ValidationError rejects a malformed node before any mutation is applied.
// The store is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ReferentialIntegrityError rejects a submenu that references a menu the
// store does not hold. The store is left unchanged.
type ReferentialIntegrityError struct {
	ParentMenuID int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("referential integrity violation: parent menu %d does not exist", e.ParentMenuID)
}

// AuthorityUnavailableError signals that permission resolution failed or
// timed out. Navigation requests carrying it must fail outright: an empty
// permission set and an unreachable authority are different outcomes.
type AuthorityUnavailableError struct {
	Err error
}

func (e *AuthorityUnavailableError) Error() string {
	return fmt.Sprintf("permission authority unavailable: %v", e.Err)
}

func (e *AuthorityUnavailableError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsReferentialIntegrity reports whether err is a ReferentialIntegrityError.
func IsReferentialIntegrity(err error) bool {
	var re *ReferentialIntegrityError
	return errors.As(err, &re)
}

// IsAuthorityUnavailable reports whether err is an AuthorityUnavailableError.
func IsAuthorityUnavailable(err error) bool {
	var ae *AuthorityUnavailableError
	return errors.As(err, &ae)
}
