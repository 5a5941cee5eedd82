package prompts

import (
	"fmt"
	"strings"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/validation"
)

const (
	editName    = "Rename"
	editNotes   = "Edit notes"
	editEnable  = "Enable"
	editDisable = "Disable"
	editDone    = "Save & Exit"
	editCancel  = "Cancel (discard changes)"
)

// PromptAccountKind prompts for account kind selection
func PromptAccountKind() (model.AccountKind, error) {
	options := []string{
		"Physical - money you hold (bank, cash, card)",
		"Virtual - a budget the money is earmarked for",
	}

	selected, err := PromptSelect("Account Type:", options, options[0])
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	return model.ParseAccountKind(strings.Split(selected, " ")[0])
}

// PromptAccountName prompts for account name with validation
func PromptAccountName(defaultName string) (string, error) {
	return PromptInput("Account Name:", defaultName, validation.ValidateAccountName)
}

// PromptOpeningBalances asks for opening amounts one currency at a time
// until an empty answer.
func PromptOpeningBalances(defaultCurrency string) (model.Balances, error) {
	opening := model.Balances{}
	for {
		text, err := PromptAmount(
			"Opening balance (press Enter to finish):",
			fmt.Sprintf("e.g. 250 %s; one currency per answer", defaultCurrency),
			func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				_, err := ParseAmount(s, defaultCurrency)
				return err
			},
		)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return opening, nil
		}
		amount, err := ParseAmount(text, defaultCurrency)
		if err != nil {
			return nil, err
		}
		opening.Add(amount)
	}
}

// PromptAccountEdits runs an edit menu and returns the collected operations
// in the order they were chosen. A cancelled edit returns no operations.
func PromptAccountEdits(acc model.AccountView) ([]model.AccountOp, error) {
	var ops []model.AccountOp
	enabled := acc.Enabled
	for {
		toggle := editDisable
		if !enabled {
			toggle = editEnable
		}
		choice, err := ui.SelectOne("What would you like to edit?", []string{editName, editNotes, toggle, editDone, editCancel})
		if err != nil {
			return nil, err
		}

		switch choice {
		case editName:
			name, err := PromptAccountName(acc.Name)
			if err != nil {
				return nil, err
			}
			ops = append(ops, model.RenameOp(strings.TrimSpace(name)))
		case editNotes:
			notes, err := PromptNotes("Notes:", acc.Notes)
			if err != nil {
				return nil, err
			}
			ops = append(ops, model.SetNotesOp(notes))
		case editEnable:
			ops = append(ops, model.EnableOp())
			enabled = true
		case editDisable:
			ops = append(ops, model.DisableOp())
			enabled = false
		case editDone:
			return ops, nil
		case editCancel:
			return nil, nil
		}
	}
}

// ParseAmount reads an amount, appending defaultCurrency when the user typed
// a bare number.
func ParseAmount(s, defaultCurrency string) (model.Amount, error) {
	s = strings.TrimSpace(s)
	if len(strings.Fields(s)) == 1 && defaultCurrency != "" {
		s += " " + defaultCurrency
	}
	return model.ParseInput(s)
}
