package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountCode = errors.New("invalid account code")
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidContactName = errors.New("invalid contact name")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxContactNameLength = 255
	MaxDescriptionLength = 512
)

// Account codes follow the Dutch decimal chart convention: three or four
// digits, the first digit selecting the rubric.
var accountCodeRegex = regexp.MustCompile(`^[0-9]{3,4}$`)

// ValidateAccountCode validates a chart-of-accounts code.
func ValidateAccountCode(code string) error {
	if !accountCodeRegex.MatchString(strings.TrimSpace(code)) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
	}
	return nil
}

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}
	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}
	return nil
}

// ValidateContactName validates a contact display name.
func ValidateContactName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidContactName)
	}
	if len(name) > MaxContactNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidContactName, MaxContactNameLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
