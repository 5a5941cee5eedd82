package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hance08/tally/internal/constants"
)

// ValidateAccountName checks a display name typed by the user.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("account name can't be empty")
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLen {
		return fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateNotes bounds free-text notes.
func ValidateNotes(notes string) error {
	if len(notes) > constants.MaxNotesLen {
		return fmt.Errorf("notes too long (max %d characters)", constants.MaxNotesLen)
	}
	return nil
}

// ValidateCurrencyCode checks a currency code entered at a prompt.
func ValidateCurrencyCode(code string) error {
	if err := Var(code, "required,currency"); err != nil {
		return fmt.Errorf("currency must be 3 upper-case letters, e.g. EUR")
	}
	return nil
}

// ValidateNotEmpty rejects blank input.
func ValidateNotEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s can't be empty", field)
		}
		return nil
	}
}
