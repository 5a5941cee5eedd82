package model

import (
	"fmt"

	apperrors "github.com/hance08/tally/internal/errors"
)

// TransactionKind names the five user-facing movements plus the synthetic
// Opening kind recorded when an account is created with a starting balance.
type TransactionKind string

const (
	Received TransactionKind = "Received"
	Paid     TransactionKind = "Paid"
	MovePhys TransactionKind = "MovePhys"
	MoveVirt TransactionKind = "MoveVirt"
	Convert  TransactionKind = "Convert"
	Opening  TransactionKind = "Opening"
)

// TransactionKinds lists the kinds an AddTransaction command may carry.
var TransactionKinds = []TransactionKind{Received, Paid, MovePhys, MoveVirt, Convert}

// SlotKinds returns the account kind required in acc_1 and acc_2 for a kind.
func SlotKinds(k TransactionKind) (acc1, acc2 AccountKind, ok bool) {
	switch k {
	case Received, Paid, Convert:
		return Physical, Virtual, true
	case MovePhys:
		return Physical, Physical, true
	case MoveVirt:
		return Virtual, Virtual, true
	}
	return "", "", false
}

// HasExternalParty reports whether the kind names a counterparty outside the ledger.
func (k TransactionKind) HasExternalParty() bool { return k == Received || k == Paid }

func (k TransactionKind) String() string { return string(k) }

// ParseTransactionKind accepts any known kind name, Opening included.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch k := TransactionKind(s); k {
	case Received, Paid, MovePhys, MoveVirt, Convert, Opening:
		return k, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown transaction type "+quote(s))
}

// Transaction is an immutable record of money moving.
//
// Acc1 and Acc2 are interpreted per kind: for Received, Paid and Convert they
// are the Physical and Virtual accounts, for the two moves they are source and
// destination. NewAmount is set only for Convert and ExternalParty only for
// Received and Paid.
type Transaction struct {
	ID            TransactionID
	Notes         string
	Amount        Amount
	Kind          TransactionKind
	NewAmount     *Amount
	ExternalParty *string
	Acc1          AccountID
	Acc2          AccountID
}

// Posting is the signed effect of a transaction on one account.
type Posting struct {
	Account AccountID
	Amount  Amount
}

// Postings returns the balance effects of t in application order.
func (t Transaction) Postings() []Posting {
	a := t.Amount
	switch t.Kind {
	case Received:
		return []Posting{{t.Acc1, a}, {t.Acc2, a}}
	case Paid:
		return []Posting{{t.Acc1, a.Neg()}, {t.Acc2, a.Neg()}}
	case MovePhys, MoveVirt:
		return []Posting{{t.Acc1, a.Neg()}, {t.Acc2, a}}
	case Convert:
		if t.NewAmount == nil {
			return nil
		}
		n := *t.NewAmount
		return []Posting{{t.Acc1, a.Neg()}, {t.Acc1, n}, {t.Acc2, a.Neg()}, {t.Acc2, n}}
	case Opening:
		return []Posting{{t.Acc1, a}}
	}
	return nil
}

// Accounts returns the distinct accounts t touches.
func (t Transaction) Accounts() []AccountID {
	if t.Acc1 == t.Acc2 {
		return []AccountID{t.Acc1}
	}
	return []AccountID{t.Acc1, t.Acc2}
}

// Touches reports whether id appears in either account slot.
func (t Transaction) Touches(id AccountID) bool { return t.Acc1 == id || t.Acc2 == id }

// Party returns the external party or an empty string.
func (t Transaction) Party() string {
	if t.ExternalParty == nil {
		return ""
	}
	return *t.ExternalParty
}

// Describe renders a one-line human summary.
func (t Transaction) Describe() string {
	switch t.Kind {
	case Received:
		return fmt.Sprintf("received %s from %s into %s/%s", t.Amount, t.Party(), t.Acc1, t.Acc2)
	case Paid:
		return fmt.Sprintf("paid %s from %s/%s to %s", t.Amount, t.Acc1, t.Acc2, t.Party())
	case MovePhys, MoveVirt:
		return fmt.Sprintf("moved %s from %s to %s", t.Amount, t.Acc1, t.Acc2)
	case Convert:
		to := ""
		if t.NewAmount != nil {
			to = t.NewAmount.String()
		}
		return fmt.Sprintf("converted %s to %s in %s/%s", t.Amount, to, t.Acc1, t.Acc2)
	case Opening:
		return fmt.Sprintf("opening balance %s in %s", t.Amount, t.Acc1)
	}
	return string(t.Kind)
}
