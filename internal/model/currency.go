package model

import (
	"github.com/Rhymond/go-money"

	apperrors "github.com/hance08/tally/internal/errors"
)

// defaultFraction is used for codes the ISO table does not know.
const defaultFraction = 2

// Currency is a three letter upper-case currency code, e.g. EUR.
type Currency string

// Frequently used currencies.
const (
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	USD Currency = "USD"
)

// ParseCurrency validates a currency code.
func ParseCurrency(s string) (Currency, error) {
	if len(s) != 3 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidCurrencyCode, "currency code "+quote(s)+" must be exactly 3 upper-case letters")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", apperrors.WithMessage(apperrors.ErrInvalidCurrencyCode, "currency code "+quote(s)+" must be exactly 3 upper-case letters")
		}
	}
	return Currency(s), nil
}

// Fraction returns the number of decimal places amounts in c carry.
func (c Currency) Fraction() int {
	if cur := money.GetCurrency(string(c)); cur != nil {
		return cur.Fraction
	}
	return defaultFraction
}

func (c Currency) String() string { return string(c) }

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) { return []byte(c), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(b []byte) error {
	parsed, err := ParseCurrency(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func quote(s string) string { return "\"" + s + "\"" }
