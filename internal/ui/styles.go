package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/model"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

func Separator() {
	pterm.Println(pterm.Gray(strings.Repeat("─", 40)))
}

// KindColor paints s in the color of an account kind.
func KindColor(kind model.AccountKind, s string) string {
	switch kind {
	case model.Physical:
		return pterm.Green(s)
	case model.Virtual:
		return pterm.Cyan(s)
	}
	return s
}

// TxColor paints s in the color of a transaction kind.
func TxColor(kind model.TransactionKind, s string) string {
	switch kind {
	case model.Received:
		return pterm.Green(s)
	case model.Paid:
		return pterm.Red(s)
	case model.MovePhys, model.MoveVirt:
		return pterm.Blue(s)
	case model.Convert:
		return pterm.Magenta(s)
	}
	return pterm.Gray(s)
}

// BalancesColor renders balances, red when any currency is negative.
func BalancesColor(b model.Balances) string {
	text := b.String()
	for _, c := range b.Currencies() {
		if b.Get(c).IsNegative() {
			return pterm.Red(text)
		}
	}
	return text
}
