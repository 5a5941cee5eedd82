package views

import (
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/utils"
)

// SlotLabels names the two account slots of a transaction kind.
func SlotLabels(kind model.TransactionKind) (acc1, acc2 string) {
	switch kind {
	case model.Received:
		return "receiving account", "budget"
	case model.Paid:
		return "paying account", "budget"
	case model.MovePhys:
		return "source account", "destination account"
	case model.MoveVirt:
		return "source budget", "destination budget"
	case model.Convert:
		return "account", "budget"
	case model.Opening:
		return "account", "account"
	}
	return "account", "account"
}

// KindLabel is the human name of a transaction kind.
func KindLabel(kind model.TransactionKind) string {
	switch kind {
	case model.Received:
		return "Income"
	case model.Paid:
		return "Expense"
	case model.MovePhys:
		return "Transfer"
	case model.MoveVirt:
		return "Reallocation"
	case model.Convert:
		return "Conversion"
	case model.Opening:
		return "Opening"
	}
	return string(kind)
}

// Names maps account ids to display names.
type Names map[model.AccountID]string

// NamesOf indexes accounts by id.
func NamesOf(accounts []model.AccountView) Names {
	names := make(Names, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	return names
}

// Name returns the account name, or a shortened id for unknown accounts.
func (n Names) Name(id model.AccountID) string {
	if name, ok := n[id]; ok {
		return name
	}
	return utils.ShortID(string(id), 2)
}

// Counterparty describes the other side of tx as seen from the transaction list.
func (n Names) Counterparty(tx model.Transaction) string {
	switch tx.Kind {
	case model.Received:
		return "from " + tx.Party()
	case model.Paid:
		return "to " + tx.Party()
	case model.Opening:
		return "opening balance"
	case model.Convert:
		if tx.NewAmount != nil {
			return "into " + tx.NewAmount.String()
		}
	}
	return ""
}
