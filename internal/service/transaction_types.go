package service

import (
	"github.com/hance08/tally/internal/model"
)

// TransactionInput is a transaction before it gets an id. Acc1 and Acc2
// follow the slot meaning of Kind.
type TransactionInput struct {
	Kind      model.TransactionKind
	Amount    model.Amount
	NewAmount *model.Amount
	Party     string
	Acc1      model.AccountID
	Acc2      model.AccountID
	Notes     string
}

func (in TransactionInput) build() model.Transaction {
	tx := model.Transaction{
		ID:        model.NewTransactionID(),
		Notes:     in.Notes,
		Amount:    in.Amount,
		Kind:      in.Kind,
		NewAmount: in.NewAmount,
		Acc1:      in.Acc1,
		Acc2:      in.Acc2,
	}
	if in.Kind.HasExternalParty() {
		party := in.Party
		tx.ExternalParty = &party
	}
	return tx
}

// RawTransactionInput is what a user types: amounts as text and accounts by
// name or id.
type RawTransactionInput struct {
	Kind      model.TransactionKind
	Amount    string
	NewAmount string
	Party     string
	Acc1      string
	Acc2      string
	Notes     string
}
