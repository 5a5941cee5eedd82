package model

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/hance08/tally/internal/errors"
)

var (
	canonicalNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)
	inputNumber     = regexp.MustCompile(`^[-+]?[0-9]+(\.[0-9]+)?$`)
)

// Amount is an exact quantity of a single currency.
// The value never carries more decimal places than the currency allows.
type Amount struct {
	value    decimal.Decimal
	currency Currency
}

// NewAmount builds an amount, refusing values finer than the currency precision.
func NewAmount(value decimal.Decimal, currency Currency) (Amount, error) {
	if _, err := ParseCurrency(string(currency)); err != nil {
		return Amount{}, err
	}
	places := int32(currency.Fraction())
	if !value.Round(places).Equal(value) {
		return Amount{}, apperrors.WithMessage(apperrors.ErrParse,
			fmt.Sprintf("%s allows at most %d decimal places, got %s", currency, places, value))
	}
	return Amount{value: value, currency: currency}, nil
}

// Zero returns the zero amount of a currency.
func Zero(currency Currency) Amount {
	return Amount{value: decimal.Zero, currency: currency}
}

// Parse reads the canonical "<value> <CODE>" form, e.g. "100 EUR" or "-12.50 USD".
// Only text that Format reproduces byte for byte is accepted.
func Parse(text string) (Amount, error) {
	num, code, ok := strings.Cut(text, " ")
	if !ok || strings.Contains(code, " ") {
		return Amount{}, parseError(text, "amounts are written as \"<value> <CODE>\"")
	}
	currency, err := ParseCurrency(code)
	if err != nil {
		return Amount{}, apperrors.Wrap(apperrors.ErrParse, err)
	}
	if !canonicalNumber.MatchString(num) {
		return Amount{}, parseError(text, "malformed value")
	}
	places := currency.Fraction()
	if _, frac, found := strings.Cut(num, "."); found {
		if len(frac) != places {
			return Amount{}, parseError(text, fmt.Sprintf("%s amounts carry exactly %d decimal places", currency, places))
		}
		if strings.Trim(frac, "0") == "" {
			return Amount{}, parseError(text, "whole values are written without decimals")
		}
	}
	value, err := decimal.NewFromString(num)
	if err != nil {
		return Amount{}, apperrors.Wrap(apperrors.ErrParse, err)
	}
	if value.IsZero() && strings.HasPrefix(num, "-") {
		return Amount{}, parseError(text, "negative zero")
	}
	return Amount{value: value, currency: currency}, nil
}

// ParseInput is the lenient variant used for human input. It accepts any
// number of decimals and extra whitespace but never rounds: digits beyond the
// currency precision must be zero.
func ParseInput(text string) (Amount, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Amount{}, parseError(text, "amounts are written as \"<value> <CODE>\"")
	}
	currency, err := ParseCurrency(strings.ToUpper(fields[1]))
	if err != nil {
		return Amount{}, apperrors.Wrap(apperrors.ErrParse, err)
	}
	if !inputNumber.MatchString(fields[0]) {
		return Amount{}, parseError(text, "malformed value")
	}
	value, err := decimal.NewFromString(strings.TrimPrefix(fields[0], "+"))
	if err != nil {
		return Amount{}, apperrors.Wrap(apperrors.ErrParse, err)
	}
	return NewAmount(value, currency)
}

func parseError(text, reason string) error {
	return apperrors.WithMessage(apperrors.ErrParse, fmt.Sprintf("cannot parse amount %q: %s", text, reason))
}

// String formats the amount in its canonical text form.
func (a Amount) String() string {
	if a.currency == "" {
		return ""
	}
	if a.value.IsInteger() {
		return a.value.Truncate(0).String() + " " + string(a.currency)
	}
	return a.value.StringFixed(int32(a.currency.Fraction())) + " " + string(a.currency)
}

func (a Amount) Currency() Currency       { return a.currency }
func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) IsZero() bool             { return a.value.IsZero() }
func (a Amount) IsPositive() bool         { return a.value.IsPositive() }
func (a Amount) IsNegative() bool         { return a.value.IsNegative() }
func (a Amount) Neg() Amount              { return Amount{value: a.value.Neg(), currency: a.currency} }

// Equal reports whether both amounts have the same currency and value.
func (a Amount) Equal(b Amount) bool {
	return a.currency == b.currency && a.value.Equal(b.value)
}

// Add returns a+b. Both must share a currency.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.currency != b.currency {
		return Amount{}, mismatch(a, b)
	}
	return Amount{value: a.value.Add(b.value), currency: a.currency}, nil
}

// Sub returns a-b. Both must share a currency.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.currency != b.currency {
		return Amount{}, mismatch(a, b)
	}
	return Amount{value: a.value.Sub(b.value), currency: a.currency}, nil
}

func mismatch(a, b Amount) error {
	return apperrors.WithMessage(apperrors.ErrCurrencyMismatch,
		fmt.Sprintf("cannot combine %s with %s", a.currency, b.currency))
}

// MarshalText implements encoding.TextMarshaler, which also drives JSON and TOML.
func (a Amount) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler using the canonical form.
func (a *Amount) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer; amounts are stored as TEXT.
func (a Amount) Value() (driver.Value, error) { return a.String(), nil }

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return a.UnmarshalText([]byte(v))
	case []byte:
		return a.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Amount", src)
	}
}
