package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID       string `json:"id" validate:"required,ledger_id"`
	Currency string `json:"currency" validate:"required,currency"`
	Kind     string `json:"typ" validate:"required,account_kind"`
	Tx       string `json:"tx" validate:"omitempty,transaction_kind"`
	Name     string `json:"name" validate:"max=5"`
}

func TestStruct(t *testing.T) {
	ok := payload{
		ID:       "lusab-babad-gutih-tugad-lusab-babad-gutih-tugad",
		Currency: "EUR",
		Kind:     "virtual",
		Tx:       "Opening",
		Name:     "Cash",
	}
	require.NoError(t, Struct(ok))

	bad := ok
	bad.ID = "lusab-babad"
	bad.Currency = "eur"
	bad.Kind = "savings"
	bad.Tx = "Refund"
	bad.Name = "Groceries"
	err := Struct(bad)
	require.Error(t, err)
	for _, want := range []string{
		"ID is not a valid identifier",
		"Currency must be a 3-letter currency code",
		"Kind must be Physical or Virtual",
		"Tx is not a known transaction type",
		"Name must be at most 5 characters",
	} {
		assert.Contains(t, err.Error(), want)
	}

	err = Struct(payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID is required")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("USD", "currency"))
	assert.Error(t, Var("US", "currency"))
	assert.NoError(t, Var("PHYS", "account_kind"))
	assert.Error(t, Var("", "required,account_kind"))
}

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "Checking", false},
		{"padded", "  Wallet  ", false},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 101), true},
		{"multibyte at limit", strings.Repeat("é", 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPromptValidators(t *testing.T) {
	assert.NoError(t, ValidateCurrencyCode("GBP"))
	assert.EqualError(t, ValidateCurrencyCode("gbp"), "currency must be 3 upper-case letters, e.g. EUR")

	assert.NoError(t, ValidateNotes("fine"))
	assert.Error(t, ValidateNotes(strings.Repeat("x", 4097)))

	notEmpty := ValidateNotEmpty("payee")
	assert.EqualError(t, notEmpty(" "), "payee can't be empty")
	assert.NoError(t, notEmpty("Bakery"))
}
