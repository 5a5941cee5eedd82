package model

import (
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hance08/tally/internal/errors"
)

func mustParse(t *testing.T, s string) Amount {
	t.Helper()
	a, err := Parse(s)
	require.NoError(t, err)
	return a
}

func TestParseCanonicalRoundTrip(t *testing.T) {
	for _, text := range []string{
		"0 EUR",
		"100 EUR",
		"-5 EUR",
		"12.50 EUR",
		"-0.01 USD",
		"1000000 JPY",
		"1.234 BHD",
		"7.05 XYZ",
	} {
		t.Run(text, func(t *testing.T) {
			a := mustParse(t, text)
			assert.Equal(t, text, a.String())
		})
	}
}

func TestParseRejectsNonCanonical(t *testing.T) {
	for _, text := range []string{
		"",
		"100",
		"EUR",
		"100  EUR",
		"100 eur",
		"100 EURO",
		"0100 EUR",
		"100.00 EUR",
		"100.5 EUR",
		"100.505 EUR",
		"1.5 JPY",
		"-0 EUR",
		"+5 EUR",
		"1e3 EUR",
		" 5 EUR",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindParse, apperrors.KindOf(err))
		})
	}
}

func TestParseInputIsLenientButNeverRounds(t *testing.T) {
	a, err := ParseInput("  100.500   eur ")
	require.NoError(t, err)
	assert.Equal(t, "100.50 EUR", a.String())

	a, err = ParseInput("+7 USD")
	require.NoError(t, err)
	assert.Equal(t, "7 USD", a.String())

	a, err = ParseInput("-0 EUR")
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	_, err = ParseInput("100.505 EUR")
	require.ErrorIs(t, err, apperrors.ErrParse)

	_, err = ParseInput("3.5 JPY")
	require.ErrorIs(t, err, apperrors.ErrParse)
}

func TestNewAmountEnforcesPrecision(t *testing.T) {
	_, err := NewAmount(decimal.RequireFromString("0.001"), EUR)
	require.Error(t, err)

	a, err := NewAmount(decimal.RequireFromString("2.5"), EUR)
	require.NoError(t, err)
	assert.Equal(t, "2.50 EUR", a.String())

	_, err = NewAmount(decimal.NewFromInt(1), Currency("eu"))
	require.ErrorIs(t, err, apperrors.ErrInvalidCurrencyCode)
}

func TestArithmeticRequiresSameCurrency(t *testing.T) {
	eur := mustParse(t, "10 EUR")
	usd := mustParse(t, "10 USD")

	_, err := eur.Add(usd)
	require.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
	_, err = eur.Sub(usd)
	require.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	sum, err := eur.Add(mustParse(t, "0.25 EUR"))
	require.NoError(t, err)
	assert.Equal(t, "10.25 EUR", sum.String())

	diff, err := eur.Sub(mustParse(t, "10.50 EUR"))
	require.NoError(t, err)
	assert.Equal(t, "-0.50 EUR", diff.String())
	assert.True(t, diff.IsNegative())
	assert.Equal(t, "0.50 EUR", diff.Neg().String())
}

func TestAmountEncodings(t *testing.T) {
	a := mustParse(t, "42.10 GBP")

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `"42.10 GBP"`, string(data))

	var back Amount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, a.Equal(back))

	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, driver.Value("42.10 GBP"), v)

	var scanned Amount
	require.NoError(t, scanned.Scan([]byte("42.10 GBP")))
	assert.True(t, a.Equal(scanned))
	require.Error(t, scanned.Scan(42))
}

func TestBalances(t *testing.T) {
	b := Balances{}
	b.Add(mustParse(t, "10 EUR"))
	b.Add(mustParse(t, "5 USD"))
	b.Add(mustParse(t, "-10 EUR"))

	assert.True(t, b.Get(EUR).IsZero())
	assert.Equal(t, "5 USD", b.Get(USD).String())
	assert.Equal(t, "0 GBP", b.Get(GBP).String())
	assert.False(t, b.IsZero())
	assert.Equal(t, []Currency{EUR, USD}, b.Currencies())
	assert.Equal(t, "0 EUR, 5 USD", b.String())

	clone := b.Clone()
	clone.Add(mustParse(t, "1 USD"))
	assert.False(t, b.Equal(clone))
	assert.Equal(t, "5 USD", b.Get(USD).String())
}
