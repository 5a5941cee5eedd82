package store

import (
	"fmt"

	"github.com/hance08/tally/internal/model"
)

// accountRecord and transactionRecord are the flat persisted shapes shared
// by both backends: SQL rows and TOML files carry the same columns.
type accountRecord struct {
	ID      string `toml:"id"`
	Type    string `toml:"type"`
	Name    string `toml:"name"`
	Notes   string `toml:"notes"`
	Enabled bool   `toml:"enabled"`
}

type transactionRecord struct {
	ID            string  `toml:"id"`
	Amount        string  `toml:"amount"`
	Type          string  `toml:"type"`
	NewAmount     *string `toml:"new_amount,omitempty"`
	ExternalParty *string `toml:"external_party,omitempty"`
	Acc1          string  `toml:"acc_1"`
	Acc2          string  `toml:"acc_2"`
	Notes         string  `toml:"notes"`
}

func newAccountRecord(acc model.Account) accountRecord {
	return accountRecord{
		ID:      string(acc.ID),
		Type:    string(acc.Kind),
		Name:    acc.Name,
		Notes:   acc.Notes,
		Enabled: acc.Enabled,
	}
}

func (r accountRecord) toModel() (model.Account, error) {
	kind, err := model.ParseAccountKind(r.Type)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", r.ID, ErrCorrupt)
	}
	return model.Account{
		ID:      model.AccountID(r.ID),
		Name:    r.Name,
		Notes:   r.Notes,
		Kind:    kind,
		Enabled: r.Enabled,
	}, nil
}

func newTransactionRecord(tx model.Transaction) transactionRecord {
	r := transactionRecord{
		ID:            string(tx.ID),
		Amount:        tx.Amount.String(),
		Type:          string(tx.Kind),
		ExternalParty: tx.ExternalParty,
		Acc1:          string(tx.Acc1),
		Acc2:          string(tx.Acc2),
		Notes:         tx.Notes,
	}
	if tx.NewAmount != nil {
		s := tx.NewAmount.String()
		r.NewAmount = &s
	}
	return r
}

func (r transactionRecord) toModel() (model.Transaction, error) {
	kind, err := model.ParseTransactionKind(r.Type)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w: %v", r.ID, ErrCorrupt, err)
	}
	amount, err := model.Parse(r.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s amount: %w: %v", r.ID, ErrCorrupt, err)
	}
	tx := model.Transaction{
		ID:            model.TransactionID(r.ID),
		Notes:         r.Notes,
		Amount:        amount,
		Kind:          kind,
		ExternalParty: r.ExternalParty,
		Acc1:          model.AccountID(r.Acc1),
		Acc2:          model.AccountID(r.Acc2),
	}
	if r.NewAmount != nil {
		n, err := model.Parse(*r.NewAmount)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("transaction %s new_amount: %w: %v", r.ID, ErrCorrupt, err)
		}
		tx.NewAmount = &n
	}
	return tx, nil
}
