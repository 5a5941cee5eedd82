package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/validation"
)

// PromptInitCurrency asks for the currency that bare amounts default to.
func PromptInitCurrency(currDefault string) (string, error) {
	selection := currDefault

	err := huh.NewSelect[string]().
		Title("Welcome to Tally! Please choose the default currency:").
		Description("Amounts typed without a currency code use this one").
		Options(
			huh.NewOption("EUR", "EUR"),
			huh.NewOption("USD", "USD"),
			huh.NewOption("GBP", "GBP"),
			huh.NewOption("CHF", "CHF"),
			huh.NewOption("JPY", "JPY"),
			huh.NewOption("Other", "Other"),
		).
		Value(&selection).
		Run()

	if err != nil {
		return "", err
	}

	finalCurrency := selection
	if selection == "Other" {
		var customInput string
		err := huh.NewInput().
			Title("Please enter the currency code:").
			Description("Please use the ISO 4217 standard 3-letter currency code.").
			Value(&customInput).
			Validate(func(s string) error {
				return validation.ValidateCurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
			}).
			Run()

		if err != nil {
			return "", err
		}

		finalCurrency = strings.ToUpper(strings.TrimSpace(customInput))
	}

	return finalCurrency, nil
}

// PromptBackend asks which storage backend a new ledger uses.
func PromptBackend(current string) (string, error) {
	selection := current

	err := huh.NewSelect[string]().
		Title("Where should the ledger be stored?").
		Options(
			huh.NewOption("SQLite database (single file)", constants.BackendSQLite),
			huh.NewOption("Directory of TOML files (diff-friendly)", constants.BackendFiles),
		).
		Value(&selection).
		Run()

	return selection, err
}
