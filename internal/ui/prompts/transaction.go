package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/hance08/tally/internal/validation"
)

// PromptTransactionKind prompts for transaction type selection
func PromptTransactionKind() (model.TransactionKind, error) {
	var selected model.TransactionKind

	opts := make([]huh.Option[model.TransactionKind], 0, len(model.TransactionKinds))
	for _, k := range model.TransactionKinds {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", views.KindLabel(k), k), k))
	}

	err := huh.NewSelect[model.TransactionKind]().
		Title("Choose the transaction type:").
		Options(opts...).
		Value(&selected).
		Run()

	return selected, err
}

// PromptTransactionAmount prompts for an amount; a bare number takes the
// default currency.
func PromptTransactionAmount(message, defaultCurrency string) (model.Amount, error) {
	text, err := PromptAmount(message, "e.g. 12.50 or 12.50 "+defaultCurrency, func(s string) error {
		_, err := ParseAmount(s, defaultCurrency)
		return err
	})
	if err != nil {
		return model.Amount{}, err
	}
	return ParseAmount(text, defaultCurrency)
}

// PromptParty prompts for the external counterparty of an income or expense.
func PromptParty(kind model.TransactionKind) (string, error) {
	message := "Paid to:"
	if kind == model.Received {
		message = "Received from:"
	}
	party, err := PromptInput(message, "", validation.ValidateNotEmpty("counterparty"))
	return strings.TrimSpace(party), err
}

// PromptAccountSelection prompts for one enabled account of the given kind,
// showing current balances.
func PromptAccountSelection(accounts []model.AccountView, kind model.AccountKind, message string, exclude model.AccountID) (model.AccountID, error) {
	var opts []huh.Option[model.AccountID]
	for _, acc := range accounts {
		if acc.Kind != kind || !acc.Enabled || acc.ID == exclude {
			continue
		}
		display := acc.Name
		if len(acc.Balances) > 0 {
			display = fmt.Sprintf("%s (Balance: %s)", acc.Name, acc.Balances)
		}
		opts = append(opts, huh.NewOption(display, acc.ID))
	}

	if len(opts) == 0 {
		return "", fmt.Errorf("no available %s accounts", strings.ToLower(string(kind)))
	}

	var selected model.AccountID
	err := huh.NewSelect[model.AccountID]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(15).
		Run()

	return selected, err
}
